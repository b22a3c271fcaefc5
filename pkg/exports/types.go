// Package exports reads the JSON trading exports produced by the upstream
// export job. It defines the on-disk data model (daily, weekly, and monthly
// records) and a Store that degrades every read failure to an absent record,
// so callers see missing data as zero-valued aggregates rather than errors.
package exports

import (
	"github.com/shopspring/decimal"
)

// Trade is a single executed trade. Trades are leaf records and are never
// mutated after the exporter writes them.
type Trade struct {
	Symbol     string          `json:"symbol"`
	Side       string          `json:"side"`
	Quantity   float64         `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	PnL        decimal.Decimal `json:"pnl"`
	Commission decimal.Decimal `json:"commission"`
}

// PeriodStats is the statistics object carried by daily, weekly, and monthly
// export files.
type PeriodStats struct {
	TotalTrades     int             `json:"totalTrades"`
	NetPnL          decimal.Decimal `json:"netPnL"`
	WinRate         float64         `json:"winRate"`
	TradingDays     int             `json:"tradingDays,omitempty"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
}

// DailyRecord is one day of trading activity, identified by calendar date.
type DailyRecord struct {
	Date    string       `json:"date"`
	Trades  []Trade      `json:"trades,omitempty"`
	Summary *PeriodStats `json:"summary,omitempty"`
}

// TradeCount returns the number of trades for the day, preferring the
// precomputed summary over the trades list.
func (r *DailyRecord) TradeCount() int {
	if r == nil {
		return 0
	}
	if r.Summary != nil {
		return r.Summary.TotalTrades
	}
	return len(r.Trades)
}

// NetPnL returns the day's net P&L, preferring the precomputed summary over
// summing the trades list.
func (r *DailyRecord) NetPnL() decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	if r.Summary != nil {
		return r.Summary.NetPnL
	}
	total := decimal.Zero
	for _, t := range r.Trades {
		total = total.Add(t.PnL)
	}
	return total
}

// WinLoss returns the day's winning and losing trade counts. When the trades
// list is present winners are trades with positive P&L and losers trades with
// negative P&L; breakeven trades count as neither. When only the summary is
// available the counts are reconstructed from its win rate, which folds
// breakeven trades into the losers.
func (r *DailyRecord) WinLoss() (winners, losers int) {
	if r == nil {
		return 0, 0
	}
	if len(r.Trades) > 0 {
		for _, t := range r.Trades {
			switch {
			case t.PnL.IsPositive():
				winners++
			case t.PnL.IsNegative():
				losers++
			}
		}
		return winners, losers
	}
	if r.Summary == nil || r.Summary.TotalTrades == 0 {
		return 0, 0
	}
	winners = int(r.Summary.WinRate*float64(r.Summary.TotalTrades) + 0.5)
	return winners, r.Summary.TotalTrades - winners
}

// Commission returns the day's total commission, preferring the summary.
func (r *DailyRecord) Commission() decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	if r.Summary != nil && !r.Summary.TotalCommission.IsZero() {
		return r.Summary.TotalCommission
	}
	total := decimal.Zero
	for _, t := range r.Trades {
		total = total.Add(t.Commission.Abs())
	}
	return total
}

// PeriodRecord is a weekly or monthly export file. Older exports carry the
// statistics under "summary", newer ones under "statistics"; both are
// accepted.
type PeriodRecord struct {
	Period     string       `json:"period,omitempty"`
	Summary    *PeriodStats `json:"summary,omitempty"`
	Statistics *PeriodStats `json:"statistics,omitempty"`
}

// Stats returns the record's statistics object, or nil when neither form is
// present.
func (r *PeriodRecord) Stats() *PeriodStats {
	if r == nil {
		return nil
	}
	if r.Statistics != nil {
		return r.Statistics
	}
	return r.Summary
}
