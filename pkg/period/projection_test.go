package period_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/traderecap/traderecap/pkg/period"
)

func TestProjectLinearRate(t *testing.T) {
	// Halfway through the year at +100: project +200 by year end.
	p := period.Project(50, decimal.NewFromInt(100), 50, 50)

	assert.Equal(t, 50, p.ActualTrades)
	assert.Equal(t, "100", p.ActualPnL.String())
	assert.Equal(t, 100, p.ProjectedTrades)
	assert.True(t, decimal.NewFromInt(200).Equal(p.ProjectedPnL))
	assert.Equal(t, 50, p.DaysRemaining)
}

func TestProjectRoundsTradeCount(t *testing.T) {
	// 7 trades over 3 days, 2 days remaining: rate 2.333 -> 7 + 4.667 -> 12.
	p := period.Project(7, decimal.NewFromInt(21), 3, 2)
	assert.Equal(t, 12, p.ProjectedTrades)
}

func TestProjectZeroDaysElapsed(t *testing.T) {
	p := period.Project(0, decimal.Zero, 0, 365)

	assert.Equal(t, 0, p.ProjectedTrades)
	assert.True(t, p.ProjectedPnL.IsZero())
	assert.Equal(t, 365, p.DaysRemaining)
}

func TestProjectCompletedYear(t *testing.T) {
	// No days remaining: the projection collapses to the actuals.
	p := period.Project(120, decimal.NewFromInt(500), 365, 0)

	assert.Equal(t, 120, p.ProjectedTrades)
	assert.True(t, decimal.NewFromInt(500).Equal(p.ProjectedPnL))
}

func TestYearToDate(t *testing.T) {
	// Today pinned to 2026-04-10 (YearDay 100). January and March have
	// precomputed monthly exports; February has none.
	agg, dir := newAggregator(t, "2026-04-10")

	writeExport(t, dir, "monthly/2026-01.json", `{"statistics": {"totalTrades": 10, "netPnL": 60, "winRate": 0.5}}`)
	writeExport(t, dir, "monthly/2026-03.json", `{"statistics": {"totalTrades": 10, "netPnL": 40, "winRate": 0.5}}`)

	p := agg.YearToDate(2026)

	assert.Equal(t, 20, p.ActualTrades)
	assert.True(t, decimal.NewFromInt(100).Equal(p.ActualPnL))
	assert.Equal(t, 265, p.DaysRemaining)
	// dailyRate = 100/100 = 1/day -> 100 + 265.
	assert.True(t, decimal.NewFromInt(365).Equal(p.ProjectedPnL))
}

func TestYearToDateFutureYear(t *testing.T) {
	agg, _ := newAggregator(t, "2026-04-10")

	p := agg.YearToDate(2027)
	assert.Equal(t, 0, p.ActualTrades)
	assert.True(t, p.ProjectedPnL.IsZero())
	assert.Equal(t, 365, p.DaysRemaining)
}
