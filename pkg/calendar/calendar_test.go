package calendar_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderecap/traderecap/pkg/calendar"
	"github.com/traderecap/traderecap/pkg/exports"
	"github.com/traderecap/traderecap/pkg/logging"
)

func writeExport(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func buildYear(t *testing.T, year int, days map[string]string) *calendar.Year {
	t.Helper()
	dir := t.TempDir()
	for date, content := range days {
		writeExport(t, dir, "daily/"+date+".json", content)
	}
	store := exports.NewStore(dir, exports.WithLogger(&logging.Nop))
	return calendar.Build(store, year)
}

func dayFor(t *testing.T, y *calendar.Year, date string) calendar.Day {
	t.Helper()
	parsed, err := time.ParseInLocation(exports.DateLayout, date, time.Local)
	require.NoError(t, err)
	return y.Days[parsed.YearDay()-1]
}

func TestBuildClassifiesDays(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2026-03-02": `{"summary": {"totalTrades": 2, "netPnL": 15.5, "winRate": 1}}`,
		"2026-03-03": `{"summary": {"totalTrades": 1, "netPnL": -4, "winRate": 0}}`,
		"2026-03-04": `{"summary": {"totalTrades": 3, "netPnL": 0, "winRate": 0.33}}`,
		"2026-03-05": `{"summary": {"totalTrades": 0, "netPnL": 0, "winRate": 0}}`,
	})

	require.Len(t, y.Days, 365)

	assert.Equal(t, calendar.ClassProfit, dayFor(t, y, "2026-03-02").Class)
	assert.Equal(t, calendar.ClassLoss, dayFor(t, y, "2026-03-03").Class)
	assert.Equal(t, calendar.ClassBreakeven, dayFor(t, y, "2026-03-04").Class)
	// Zero trades classifies as empty even though a record exists.
	assert.Equal(t, calendar.ClassEmpty, dayFor(t, y, "2026-03-05").Class)
	// No record at all.
	assert.Equal(t, calendar.ClassEmpty, dayFor(t, y, "2026-03-06").Class)
}

func TestBuildIgnoresOtherYears(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2025-12-31": `{"summary": {"totalTrades": 5, "netPnL": 100, "winRate": 1}}`,
		"2026-01-02": `{"summary": {"totalTrades": 1, "netPnL": 1, "winRate": 1}}`,
	})

	assert.Equal(t, 1, y.Stats.TradingDays)
	assert.Equal(t, 1, y.Stats.TotalTrades)
}

func TestStats(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 2, "netPnL": 10, "winRate": 1}}`,
		"2026-01-06": `{"summary": {"totalTrades": 1, "netPnL": -5, "winRate": 0}}`,
		"2026-02-02": `{"summary": {"totalTrades": 3, "netPnL": 4, "winRate": 0.67}}`,
	})

	s := y.Stats
	assert.Equal(t, 3, s.TradingDays)
	assert.Equal(t, 6, s.TotalTrades)
	assert.Equal(t, "9", s.TotalPnL.String())
	assert.InDelta(t, 2.0/3.0, s.WinRate, 1e-9)
	assert.Equal(t, "3", s.DailyAvg.String())

	require.NotNil(t, s.BestDay)
	assert.Equal(t, "2026-01-05", s.BestDay.Date.Format(exports.DateLayout))
	require.NotNil(t, s.WorstDay)
	assert.Equal(t, "2026-01-06", s.WorstDay.Date.Format(exports.DateLayout))

	jan := s.Months[0]
	assert.Equal(t, 2, jan.TradingDays)
	assert.Equal(t, "5", jan.PnL.String())
	feb := s.Months[1]
	assert.Equal(t, 1, feb.TradingDays)
	assert.Equal(t, "4", feb.PnL.String())
}

func TestStatsBestDayTieKeepsFirst(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 1, "netPnL": 10, "winRate": 1}}`,
		"2026-01-12": `{"summary": {"totalTrades": 1, "netPnL": 10, "winRate": 1}}`,
		"2026-01-06": `{"summary": {"totalTrades": 1, "netPnL": -2, "winRate": 0}}`,
		"2026-01-13": `{"summary": {"totalTrades": 1, "netPnL": -2, "winRate": 0}}`,
	})

	assert.Equal(t, "2026-01-05", y.Stats.BestDay.Date.Format(exports.DateLayout))
	assert.Equal(t, "2026-01-06", y.Stats.WorstDay.Date.Format(exports.DateLayout))
}

func TestStatsEmptyYear(t *testing.T) {
	y := buildYear(t, 2026, nil)

	s := y.Stats
	assert.Equal(t, 0, s.TradingDays)
	assert.Nil(t, s.BestDay)
	assert.Nil(t, s.WorstDay)
	assert.Equal(t, 0.0, s.WinRate)
	assert.True(t, s.DailyAvg.IsZero())
}

func TestRenderSVGDeterministic(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 2, "netPnL": 10, "winRate": 1}}`,
	})

	pinned := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	var first, second bytes.Buffer
	require.NoError(t, y.RenderSVG(&first, calendar.WithGeneratedAt(pinned)))
	require.NoError(t, y.RenderSVG(&second, calendar.WithGeneratedAt(pinned)))

	assert.Equal(t, first.String(), second.String())

	out := first.String()
	assert.Contains(t, out, "2026 trading calendar")
	assert.Contains(t, out, "2026-01-05: +$10.00 (2 trades)")
	assert.Contains(t, out, `fill="#40c463"`)
	assert.Contains(t, out, ">Mon</text>")
}

func TestRenderSVGCustomTheme(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 1, "netPnL": -3, "winRate": 0}}`,
	})

	theme := calendar.DefaultTheme()
	theme.Loss = "#123456"

	var buf bytes.Buffer
	require.NoError(t, y.RenderSVG(&buf, calendar.WithTheme(theme)))
	assert.Contains(t, buf.String(), `fill="#123456"`)
}

func TestWriteMarkdown(t *testing.T) {
	y := buildYear(t, 2026, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 2, "netPnL": 10, "winRate": 1}}`,
		"2026-01-06": `{"summary": {"totalTrades": 1, "netPnL": -5, "winRate": 0}}`,
	})

	var buf bytes.Buffer
	require.NoError(t, y.WriteMarkdown(&buf))

	out := buf.String()
	assert.Contains(t, out, "## 2026 Trading Calendar")
	assert.Contains(t, out, "### Monthly Breakdown")
	assert.Contains(t, out, "+$5.00")
	assert.Contains(t, out, "Best day")
	assert.True(t, strings.Contains(out, "2026-01-05 (+$10.00)"))
	assert.True(t, strings.Contains(out, "2026-01-06 (-$5.00)"))
}
