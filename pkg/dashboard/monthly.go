package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderecap/traderecap/pkg/exports"
)

// monthlyTopCount is how many winners/losers each month keeps.
const monthlyTopCount = 5

// DayStat is one trading day inside a month report.
type DayStat struct {
	Date       string          `json:"date"`
	Trades     int             `json:"trades"`
	PnL        decimal.Decimal `json:"pnl"`
	WinRate    float64         `json:"winRate"`
	Commission decimal.Decimal `json:"commission"`
}

// MonthReport is the per-month artifact entry.
type MonthReport struct {
	Month       string          `json:"month"`
	TotalTrades int             `json:"totalTrades"`
	NetPnL      decimal.Decimal `json:"netPnL"`
	WinRate     float64         `json:"winRate"`
	TradingDays int             `json:"tradingDays"`
	Commission  decimal.Decimal `json:"commission"`
	Days        []DayStat       `json:"days"`
	BestDay     *DayStat        `json:"bestDay,omitempty"`
	WorstDay    *DayStat        `json:"worstDay,omitempty"`
	TopWinners  []TradeRecord   `json:"topWinners"`
	TopLosers   []TradeRecord   `json:"topLosers"`
}

// MonthlyReport is the consolidated monthly artifact.
type MonthlyReport struct {
	Metadata Metadata      `json:"metadata"`
	Months   []MonthReport `json:"months"`
}

// Monthly partitions all daily records by calendar month and computes the
// per-month breakdown: per-day stats, best/worst day, and the month's top
// winners and losers.
func (b *Builder) Monthly() *MonthlyReport {
	months := make(map[string]*MonthReport)
	trades := make(map[string][]TradeRecord)
	wins := make(map[string]int)
	losses := make(map[string]int)

	b.store.WalkDaily(func(date time.Time, rec *exports.DailyRecord) {
		if rec.TradeCount() == 0 {
			return
		}
		label := exports.MonthLabel(date.Year(), date.Month())

		m, ok := months[label]
		if !ok {
			m = &MonthReport{
				Month:      label,
				NetPnL:     decimal.Zero,
				Commission: decimal.Zero,
				TopWinners: []TradeRecord{},
				TopLosers:  []TradeRecord{},
			}
			months[label] = m
		}

		winners, losers := rec.WinLoss()
		wins[label] += winners
		losses[label] += losers
		day := DayStat{
			Date:       rec.Date,
			Trades:     rec.TradeCount(),
			PnL:        rec.NetPnL(),
			Commission: rec.Commission(),
		}
		if winners+losers > 0 {
			day.WinRate = float64(winners) / float64(winners+losers)
		}

		m.Days = append(m.Days, day)
		m.TradingDays++
		m.TotalTrades += day.Trades
		m.NetPnL = m.NetPnL.Add(day.PnL)
		m.Commission = m.Commission.Add(day.Commission)

		for _, t := range rec.Trades {
			trades[label] = append(trades[label], TradeRecord{Date: rec.Date, Trade: t})
		}
	})

	report := &MonthlyReport{
		Metadata: b.metadata(),
		Months:   make([]MonthReport, 0, len(months)),
	}

	labels := make([]string, 0, len(months))
	for label := range months {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		m := months[label]
		finishMonth(m, trades[label], wins[label], losses[label])
		report.Months = append(report.Months, *m)
	}

	b.log.Debug().Int("months", len(report.Months)).Msg("built monthly report")
	return report
}

// finishMonth derives the month-level aggregates once all days are in.
// Best/worst day ties resolve to the first occurrence in date order.
func finishMonth(m *MonthReport, trades []TradeRecord, winners, losers int) {
	if winners+losers > 0 {
		m.WinRate = float64(winners) / float64(winners+losers)
	}

	for i := range m.Days {
		day := &m.Days[i]
		if m.BestDay == nil || day.PnL.GreaterThan(m.BestDay.PnL) {
			m.BestDay = day
		}
		if m.WorstDay == nil || day.PnL.LessThan(m.WorstDay.PnL) {
			m.WorstDay = day
		}
	}

	m.TopWinners = topWinners(trades, monthlyTopCount)
	m.TopLosers = topLosers(trades, monthlyTopCount)
}
