// Package period aggregates trading exports over calendar periods (ISO
// weeks, calendar months, year-to-date) and extrapolates year-end totals.
//
// Each operation prefers the precomputed weekly/monthly export file and only
// falls back to re-deriving the aggregate from daily records when the period
// file is absent. Days after "today" are never counted, so a half-finished
// week reports only the days that exist.
package period

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/traderecap/traderecap/pkg/exports"
	"github.com/traderecap/traderecap/pkg/logging"
)

// Summary is the aggregate for one reporting period.
type Summary struct {
	Label   string          `json:"period"`
	Trades  int             `json:"trades"`
	PnL     decimal.Decimal `json:"pnl"`
	WinRate float64         `json:"winRate"`
}

// Aggregator computes period summaries from an export store.
type Aggregator struct {
	store *exports.Store
	now   func() time.Time
	log   *zerolog.Logger
}

// Option is a functional option for configuring the Aggregator.
type Option func(*Aggregator)

// WithClock overrides the clock used to resolve "today". Used in tests and
// for reproducing historical reports.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithLogger sets the logger used for aggregation diagnostics.
func WithLogger(log *zerolog.Logger) Option {
	return func(a *Aggregator) {
		a.log = log
	}
}

// New creates an Aggregator reading from store.
func New(store *exports.Store, opts ...Option) *Aggregator {
	a := &Aggregator{
		store: store,
		now:   time.Now,
		log:   logging.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CurrentWeek aggregates the ISO week containing today.
func (a *Aggregator) CurrentWeek() Summary {
	return a.Week(weekStart(a.today()))
}

// LastWeek aggregates the ISO week before the one containing today.
func (a *Aggregator) LastWeek() Summary {
	return a.Week(weekStart(a.today()).AddDate(0, 0, -7))
}

// CurrentMonth aggregates the calendar month containing today.
func (a *Aggregator) CurrentMonth() Summary {
	t := a.today()
	return a.Month(t.Year(), t.Month())
}

// LastMonth aggregates the calendar month before the one containing today.
func (a *Aggregator) LastMonth() Summary {
	t := a.today()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	prev := first.AddDate(0, -1, 0)
	return a.Month(prev.Year(), prev.Month())
}

// Week aggregates the 7 days starting at monday. The precomputed weekly
// export is used when present; otherwise the constituent daily records are
// summed.
func (a *Aggregator) Week(monday time.Time) Summary {
	isoYear, isoWeek := monday.ISOWeek()
	label := exports.WeekLabel(isoYear, isoWeek)

	if stats := a.store.Weekly(isoYear, isoWeek); stats != nil {
		return summaryFromStats(label, stats)
	}

	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, monday.AddDate(0, 0, i))
	}
	return a.sumDays(label, days)
}

// Month aggregates one calendar month. The precomputed monthly export is used
// when present; otherwise the constituent daily records are summed.
func (a *Aggregator) Month(year int, month time.Month) Summary {
	label := exports.MonthLabel(year, month)

	if stats := a.store.Monthly(year, month); stats != nil {
		return summaryFromStats(label, stats)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	length := first.AddDate(0, 1, -1).Day()
	days := make([]time.Time, 0, length)
	for d := 0; d < length; d++ {
		days = append(days, first.AddDate(0, 0, d))
	}
	return a.sumDays(label, days)
}

// sumDays accumulates daily records over the given days, excluding days
// beyond today.
func (a *Aggregator) sumDays(label string, days []time.Time) Summary {
	today := a.today()
	sum := Summary{Label: label, PnL: decimal.Zero}
	var winners, losers int

	for _, day := range days {
		if day.After(today) {
			continue
		}
		rec := a.store.Daily(day)
		if rec == nil || rec.TradeCount() == 0 {
			continue
		}
		sum.Trades += rec.TradeCount()
		sum.PnL = sum.PnL.Add(rec.NetPnL())
		w, l := rec.WinLoss()
		winners += w
		losers += l
	}

	sum.WinRate = winRate(winners, losers)
	a.log.Debug().
		Str("period", label).
		Int("trades", sum.Trades).
		Str("pnl", sum.PnL.String()).
		Msg("derived period from daily records")
	return sum
}

// today returns the current date truncated to midnight local time.
func (a *Aggregator) today() time.Time {
	t := a.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// weekStart returns the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// winRate returns winners / (winners + losers), or 0 when no decided trades
// exist.
func winRate(winners, losers int) float64 {
	decided := winners + losers
	if decided == 0 {
		return 0
	}
	return float64(winners) / float64(decided)
}

// summaryFromStats converts a precomputed statistics object into a Summary.
func summaryFromStats(label string, stats *exports.PeriodStats) Summary {
	return Summary{
		Label:   label,
		Trades:  stats.TotalTrades,
		PnL:     stats.NetPnL,
		WinRate: stats.WinRate,
	}
}
