package period

import (
	"time"

	"github.com/shopspring/decimal"
)

// Projection extrapolates year-end totals from year-to-date activity using a
// linear daily-rate model. The model is intentionally naive: no seasonality,
// no confidence bounds.
type Projection struct {
	ActualTrades    int             `json:"actualTrades"`
	ActualPnL       decimal.Decimal `json:"actualPnL"`
	ProjectedTrades int             `json:"projectedTrades"`
	ProjectedPnL    decimal.Decimal `json:"projectedPnL"`
	DaysRemaining   int             `json:"daysRemaining"`
}

// YearToDate sums monthly aggregates for months 1..current and projects them
// to year end. For years already completed the projection equals the actual
// totals. daysElapsed of zero yields zero projections.
func (a *Aggregator) YearToDate(year int) Projection {
	today := a.today()

	lastMonth := time.December
	if year == today.Year() {
		lastMonth = today.Month()
	} else if year > today.Year() {
		lastMonth = 0
	}

	actualPnL := decimal.Zero
	actualTrades := 0
	for m := time.January; m <= lastMonth; m++ {
		sum := a.Month(year, m)
		actualTrades += sum.Trades
		actualPnL = actualPnL.Add(sum.PnL)
	}

	daysInYear := time.Date(year, 12, 31, 0, 0, 0, 0, time.Local).YearDay()
	daysElapsed := daysInYear
	if year == today.Year() {
		daysElapsed = today.YearDay()
	} else if year > today.Year() {
		daysElapsed = 0
	}
	daysRemaining := daysInYear - daysElapsed

	return Project(actualTrades, actualPnL, daysElapsed, daysRemaining)
}

// Project applies the linear daily-rate model to year-to-date totals.
func Project(actualTrades int, actualPnL decimal.Decimal, daysElapsed, daysRemaining int) Projection {
	p := Projection{
		ActualTrades:  actualTrades,
		ActualPnL:     actualPnL,
		ProjectedPnL:  decimal.Zero,
		DaysRemaining: daysRemaining,
	}
	if daysElapsed <= 0 {
		return p
	}

	elapsed := decimal.NewFromInt(int64(daysElapsed))
	remaining := decimal.NewFromInt(int64(daysRemaining))

	dailyRate := actualPnL.Div(elapsed)
	p.ProjectedPnL = actualPnL.Add(dailyRate.Mul(remaining))

	tradeRate := float64(actualTrades) / float64(daysElapsed)
	p.ProjectedTrades = actualTrades + int(tradeRate*float64(daysRemaining)+0.5)

	return p
}
