package dashboard_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPartitionsByMonth(t *testing.T) {
	b := newBuilder(t, map[string]string{
		"2026-01-05": tradesJSON(10, -4),
		"2026-01-07": tradesJSON(6),
		"2026-02-03": tradesJSON(-2),
	})

	report := b.Monthly()

	require.Len(t, report.Months, 2)
	assert.Equal(t, "2026-01", report.Months[0].Month)
	assert.Equal(t, "2026-02", report.Months[1].Month)

	jan := report.Months[0]
	assert.Equal(t, 3, jan.TotalTrades)
	assert.Equal(t, 2, jan.TradingDays)
	assert.Equal(t, "12", jan.NetPnL.String())
	assert.InDelta(t, 2.0/3.0, jan.WinRate, 1e-9)
	assert.Equal(t, "1.5", jan.Commission.String())
	require.Len(t, jan.Days, 2)
	assert.Equal(t, "2026-01-05", jan.Days[0].Date)
	assert.Equal(t, 2, jan.Days[0].Trades)
	assert.InDelta(t, 0.5, jan.Days[0].WinRate, 1e-9)

	feb := report.Months[1]
	assert.Equal(t, 1, feb.TotalTrades)
	assert.Equal(t, "-2", feb.NetPnL.String())
	assert.Equal(t, 0.0, feb.WinRate)
}

func TestMonthlyBestAndWorstDay(t *testing.T) {
	b := newBuilder(t, map[string]string{
		"2026-01-05": tradesJSON(10),
		"2026-01-06": tradesJSON(-4),
		"2026-01-07": tradesJSON(10), // ties best day; first occurrence wins
	})

	m := b.Monthly().Months[0]

	require.NotNil(t, m.BestDay)
	assert.Equal(t, "2026-01-05", m.BestDay.Date)
	require.NotNil(t, m.WorstDay)
	assert.Equal(t, "2026-01-06", m.WorstDay.Date)
}

func TestMonthlyTopFivePerMonth(t *testing.T) {
	days := map[string]string{}
	for i := 1; i <= 8; i++ {
		days[fmt.Sprintf("2026-01-%02d", i)] = tradesJSON(float64(i))
	}
	b := newBuilder(t, days)

	m := b.Monthly().Months[0]

	require.Len(t, m.TopWinners, 5)
	assert.Equal(t, "8", m.TopWinners[0].PnL.String())
	assert.Equal(t, "4", m.TopWinners[4].PnL.String())
	require.Len(t, m.TopLosers, 5)
	assert.Equal(t, "1", m.TopLosers[0].PnL.String())
}

func TestMonthlySkipsEmptyDays(t *testing.T) {
	b := newBuilder(t, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 0, "netPnL": 0, "winRate": 0}}`,
	})

	assert.Empty(t, b.Monthly().Months)
}

func TestMonthlySummaryOnlyDaysCountTowardWinRate(t *testing.T) {
	// One day has only a summary (no trade list); its winners still feed the
	// month win rate even though no trades flatten into the top lists.
	b := newBuilder(t, map[string]string{
		"2026-01-05": `{"summary": {"totalTrades": 4, "netPnL": 8, "winRate": 0.75}}`,
		"2026-01-06": tradesJSON(-1),
	})

	m := b.Monthly().Months[0]

	assert.Equal(t, 5, m.TotalTrades)
	assert.InDelta(t, 3.0/5.0, m.WinRate, 1e-9)
	require.Len(t, m.TopWinners, 1)
	assert.Equal(t, "-1", m.TopWinners[0].PnL.String())
}
