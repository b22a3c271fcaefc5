// Package calendar renders a contribution-style trading calendar for one
// year: every day is classified as profit, loss, breakeven, or empty, and the
// result is emitted as a fixed-grid SVG plus a Markdown statistics block.
package calendar

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderecap/traderecap/pkg/exports"
)

// DayClass classifies one calendar day's trading result.
type DayClass int

const (
	// ClassEmpty marks a day with no record or zero trades.
	ClassEmpty DayClass = iota
	// ClassProfit marks a day with positive net P&L.
	ClassProfit
	// ClassLoss marks a day with negative net P&L.
	ClassLoss
	// ClassBreakeven marks a day with trades but zero net P&L.
	ClassBreakeven
)

// String returns the lowercase class name.
func (c DayClass) String() string {
	switch c {
	case ClassProfit:
		return "profit"
	case ClassLoss:
		return "loss"
	case ClassBreakeven:
		return "breakeven"
	default:
		return "empty"
	}
}

// Day is one classified calendar day.
type Day struct {
	Date   time.Time
	Class  DayClass
	PnL    decimal.Decimal
	Trades int
}

// Year holds the classified days and derived statistics for one year.
type Year struct {
	Year  int
	Days  []Day // one entry per calendar day, in date order
	Stats Stats
}

// Build loads every daily record for the year and classifies each calendar
// day. Days without a record, and records without trades, classify as empty.
func Build(store *exports.Store, year int) *Year {
	records := make(map[string]*exports.DailyRecord)
	store.WalkDaily(func(date time.Time, rec *exports.DailyRecord) {
		if date.Year() == year {
			records[date.Format(exports.DateLayout)] = rec
		}
	})

	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	length := time.Date(year, 12, 31, 0, 0, 0, 0, time.Local).YearDay()

	y := &Year{Year: year, Days: make([]Day, 0, length)}
	for d := 0; d < length; d++ {
		date := first.AddDate(0, 0, d)
		y.Days = append(y.Days, classify(date, records[date.Format(exports.DateLayout)]))
	}

	y.Stats = computeStats(year, y.Days)
	return y
}

// classify maps a daily record to its calendar cell.
func classify(date time.Time, rec *exports.DailyRecord) Day {
	day := Day{Date: date, Class: ClassEmpty, PnL: decimal.Zero}
	if rec == nil || rec.TradeCount() == 0 {
		return day
	}

	day.Trades = rec.TradeCount()
	day.PnL = rec.NetPnL()
	switch {
	case day.PnL.IsPositive():
		day.Class = ClassProfit
	case day.PnL.IsNegative():
		day.Class = ClassLoss
	default:
		day.Class = ClassBreakeven
	}
	return day
}
