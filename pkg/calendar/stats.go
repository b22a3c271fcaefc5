package calendar

import (
	"fmt"
	"io"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/traderecap/traderecap/internal/format"
	"github.com/traderecap/traderecap/pkg/exports"
)

// Stats are the year-level statistics derived from the classified days.
// WinRate here is the fraction of trading days that were profitable, not the
// per-trade win rate.
type Stats struct {
	TradingDays int
	TotalTrades int
	TotalPnL    decimal.Decimal
	WinRate     float64
	BestDay     *Day
	WorstDay    *Day
	DailyAvg    decimal.Decimal
	Months      [12]MonthStats
}

// MonthStats is the per-month rollup shown below the calendar.
type MonthStats struct {
	Month       time.Month
	Label       string
	TradingDays int
	Trades      int
	PnL         decimal.Decimal
}

// computeStats derives year statistics from classified days. Best and worst
// day ties resolve to the first occurrence in date order.
func computeStats(year int, days []Day) Stats {
	s := Stats{TotalPnL: decimal.Zero, DailyAvg: decimal.Zero}
	for m := range s.Months {
		s.Months[m] = MonthStats{
			Month: time.Month(m + 1),
			Label: exports.MonthLabel(year, time.Month(m+1)),
			PnL:   decimal.Zero,
		}
	}

	profitDays := 0
	for i := range days {
		day := &days[i]
		if day.Class == ClassEmpty {
			continue
		}

		s.TradingDays++
		s.TotalTrades += day.Trades
		s.TotalPnL = s.TotalPnL.Add(day.PnL)
		if day.Class == ClassProfit {
			profitDays++
		}

		m := &s.Months[int(day.Date.Month())-1]
		m.TradingDays++
		m.Trades += day.Trades
		m.PnL = m.PnL.Add(day.PnL)

		if s.BestDay == nil || day.PnL.GreaterThan(s.BestDay.PnL) {
			s.BestDay = day
		}
		if s.WorstDay == nil || day.PnL.LessThan(s.WorstDay.PnL) {
			s.WorstDay = day
		}
	}

	if s.TradingDays > 0 {
		s.WinRate = float64(profitDays) / float64(s.TradingDays)
		s.DailyAvg = s.TotalPnL.Div(decimal.NewFromInt(int64(s.TradingDays))).Round(2)
	}
	return s
}

// WriteMarkdown renders the year statistics as a Markdown block: a summary
// table followed by the per-month rollup.
func (y *Year) WriteMarkdown(w io.Writer) error {
	doc := md.NewMarkdown(w)

	doc.H2(fmt.Sprintf("%d Trading Calendar", y.Year)).LF()

	s := y.Stats
	rows := [][]string{
		{"Trading days", fmt.Sprintf("%d", s.TradingDays)},
		{"Total trades", fmt.Sprintf("%d", s.TotalTrades)},
		{"Net P&L", format.PnL(s.TotalPnL)},
		{"Win rate (days)", format.Rate(s.WinRate)},
		{"Daily average", format.PnL(s.DailyAvg)},
	}
	if s.BestDay != nil {
		rows = append(rows, []string{
			"Best day",
			fmt.Sprintf("%s (%s)", s.BestDay.Date.Format(exports.DateLayout), format.PnL(s.BestDay.PnL)),
		})
	}
	if s.WorstDay != nil {
		rows = append(rows, []string{
			"Worst day",
			fmt.Sprintf("%s (%s)", s.WorstDay.Date.Format(exports.DateLayout), format.PnL(s.WorstDay.PnL)),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows:   rows,
	})

	doc.H3("Monthly Breakdown").LF()
	monthRows := make([][]string, 0, len(s.Months))
	for _, m := range s.Months {
		monthRows = append(monthRows, []string{
			m.Month.String(),
			fmt.Sprintf("%d", m.TradingDays),
			fmt.Sprintf("%d", m.Trades),
			format.PnL(m.PnL),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Month", "Trading Days", "Trades", "Net P&L"},
		Rows:   monthRows,
	})

	return doc.Build()
}

