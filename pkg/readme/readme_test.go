package readme_test

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderecap/traderecap/pkg/errors"
	"github.com/traderecap/traderecap/pkg/period"
	"github.com/traderecap/traderecap/pkg/readme"
)

func sampleStats() readme.Stats {
	return readme.Stats{
		CurrentWeek: period.Summary{
			Label: "2026-W23", Trades: 3, PnL: decimal.NewFromInt(6), WinRate: 2.0 / 3.0,
		},
		LastWeek: period.Summary{
			Label: "2026-W22", Trades: 5, PnL: decimal.NewFromFloat(-12.5), WinRate: 0.4,
		},
		CurrentMonth: period.Summary{
			Label: "2026-06", Trades: 3, PnL: decimal.NewFromInt(6), WinRate: 2.0 / 3.0,
		},
		LastMonth: period.Summary{
			Label: "2026-05", Trades: 40, PnL: decimal.NewFromInt(150), WinRate: 0.55,
		},
		Projection: period.Projection{
			ActualTrades:    100,
			ActualPnL:       decimal.NewFromInt(500),
			ProjectedTrades: 240,
			ProjectedPnL:    decimal.NewFromInt(1200),
			DaysRemaining:   212,
		},
		GeneratedAt: time.Date(2026, 6, 3, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderBlock(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, readme.RenderBlock(&buf, sampleStats()))

	out := buf.String()
	assert.Contains(t, out, "## Trading Statistics")
	assert.Contains(t, out, "### Year-to-Date Projection")
	assert.Contains(t, out, "Current Week (2026-W23)")
	assert.Contains(t, out, "Last Month (2026-05)")
	assert.Contains(t, out, "+$6.00")
	assert.Contains(t, out, "-$12.50")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "212 days remaining in the year.")
	assert.Contains(t, out, "_Last updated: 2026-06-03T09:30:00Z_")
}

func TestUpdateSplicesBetweenMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	original := "# My Project\n\nIntro text.\n\n" +
		readme.StartMarker + "\nold content\n" + readme.EndMarker + "\n\nFooter.\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, readme.Update(path, "\nnew stats block\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, readme.StartMarker+"\nnew stats block\n"+readme.EndMarker)
	assert.NotContains(t, content, "old content")
	assert.True(t, strings.HasPrefix(content, "# My Project"))
	assert.True(t, strings.HasSuffix(content, "Footer.\n"))
}

func TestUpdateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	original := readme.StartMarker + "\n" + readme.EndMarker + "\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, readme.Update(path, "block"))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, readme.Update(path, "block"))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestUpdateMissingMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# No markers here\n"), 0o644))

	err := readme.Update(path, "block")

	require.Error(t, err)
	assert.True(t, errors.IsMarkerNotFound(err))
}

func TestUpdateEndBeforeStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	content := readme.EndMarker + "\n" + readme.StartMarker + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	err := readme.Update(path, "block")

	require.Error(t, err)
	assert.True(t, errors.IsMarkerNotFound(err))
}

func TestUpdateMissingFile(t *testing.T) {
	err := readme.Update(filepath.Join(t.TempDir(), "README.md"), "block")

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.IsMarkerNotFound(err))
}
