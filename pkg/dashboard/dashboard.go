// Package dashboard builds the consolidated JSON artifacts: a dashboard of
// whole-history trade metrics (profit factor, streaks, top trades, fees) and
// a per-month breakdown. Both are recomputed from the daily exports on every
// run and carry a metadata block identifying the run.
package dashboard

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/traderecap/traderecap/pkg/exports"
	"github.com/traderecap/traderecap/pkg/logging"
)

// profitFactorCap is the sentinel reported when gross profit exists with no
// gross loss.
var profitFactorCap = decimal.NewFromInt(9999)

// topTradeCount is how many winners/losers the dashboard keeps.
const topTradeCount = 10

// TradeRecord is a trade annotated with the date of the daily record it came
// from.
type TradeRecord struct {
	Date string `json:"date"`
	exports.Trade
}

// Streak describes one run of consecutive winning or losing trades.
type Streak struct {
	Type   string `json:"type"` // "win", "loss", or "none"
	Length int    `json:"length"`
}

// Streaks holds the streak metrics over the full trade sequence.
type Streaks struct {
	MaxWin  int    `json:"maxWin"`
	MaxLoss int    `json:"maxLoss"`
	Current Streak `json:"current"`
}

// Metadata identifies the run that produced an artifact. Cost-basis bounds
// are reflected from configuration only; nothing here filters by them.
type Metadata struct {
	GeneratedAt  string `json:"generatedAt"`
	ExportsDir   string `json:"exportsDir"`
	MinCostBasis string `json:"minCostBasis,omitempty"`
	MaxCostBasis string `json:"maxCostBasis,omitempty"`
}

// Dashboard is the consolidated whole-history artifact.
type Dashboard struct {
	Metadata     Metadata        `json:"metadata"`
	TotalTrades  int             `json:"totalTrades"`
	NetPnL       decimal.Decimal `json:"netPnL"`
	WinRate      float64         `json:"winRate"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	GrossLoss    decimal.Decimal `json:"grossLoss"`
	ProfitFactor decimal.Decimal `json:"profitFactor"`
	TotalFees    decimal.Decimal `json:"totalFees"`
	Streaks      Streaks         `json:"streaks"`
	TopWinners   []TradeRecord   `json:"topWinners"`
	TopLosers    []TradeRecord   `json:"topLosers"`
}

// Builder computes dashboard and monthly artifacts from an export store.
type Builder struct {
	store        *exports.Store
	log          *zerolog.Logger
	now          func() time.Time
	minCostBasis string
	maxCostBasis string
}

// BuilderOption is a functional option for configuring the Builder.
type BuilderOption func(*Builder)

// WithClock overrides the clock used for artifact timestamps.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(log *zerolog.Logger) BuilderOption {
	return func(b *Builder) {
		b.log = log
	}
}

// WithCostBasisBounds records the configured cost-basis filter bounds in the
// artifact metadata. The bounds are informational only.
func WithCostBasisBounds(min, max string) BuilderOption {
	return func(b *Builder) {
		b.minCostBasis = min
		b.maxCostBasis = max
	}
}

// NewBuilder creates a Builder reading from store.
func NewBuilder(store *exports.Store, opts ...BuilderOption) *Builder {
	b := &Builder{
		store: store,
		log:   logging.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dashboard computes the whole-history dashboard artifact.
func (b *Builder) Dashboard() *Dashboard {
	trades := b.flattenTrades()

	d := &Dashboard{
		Metadata:     b.metadata(),
		TotalTrades:  len(trades),
		NetPnL:       decimal.Zero,
		GrossProfit:  decimal.Zero,
		GrossLoss:    decimal.Zero,
		ProfitFactor: decimal.Zero,
		TotalFees:    decimal.Zero,
		TopWinners:   []TradeRecord{},
		TopLosers:    []TradeRecord{},
	}

	var winners, losers int
	for _, t := range trades {
		d.NetPnL = d.NetPnL.Add(t.PnL)
		d.TotalFees = d.TotalFees.Add(t.Commission.Abs())
		switch {
		case t.PnL.IsPositive():
			winners++
			d.GrossProfit = d.GrossProfit.Add(t.PnL)
		case t.PnL.IsNegative():
			losers++
			d.GrossLoss = d.GrossLoss.Add(t.PnL.Abs())
		}
	}

	if winners+losers > 0 {
		d.WinRate = float64(winners) / float64(winners+losers)
	}
	d.ProfitFactor = ProfitFactor(d.GrossProfit, d.GrossLoss)
	d.Streaks = ComputeStreaks(trades)
	d.TopWinners = topWinners(trades, topTradeCount)
	d.TopLosers = topLosers(trades, topTradeCount)

	b.log.Debug().
		Int("trades", d.TotalTrades).
		Str("netPnL", d.NetPnL.String()).
		Msg("built dashboard")
	return d
}

// flattenTrades collects every trade from the daily exports into one ordered
// sequence sorted by date. WalkDaily already visits records in date order and
// intra-day order is preserved as exported.
func (b *Builder) flattenTrades() []TradeRecord {
	var trades []TradeRecord
	b.store.WalkDaily(func(date time.Time, rec *exports.DailyRecord) {
		for _, t := range rec.Trades {
			trades = append(trades, TradeRecord{Date: rec.Date, Trade: t})
		}
	})
	return trades
}

// metadata stamps the artifact with the run context.
func (b *Builder) metadata() Metadata {
	return Metadata{
		GeneratedAt:  b.now().UTC().Format(time.RFC3339),
		ExportsDir:   b.store.Dir(),
		MinCostBasis: b.minCostBasis,
		MaxCostBasis: b.maxCostBasis,
	}
}

// ProfitFactor returns gross profit divided by gross loss. When there is no
// gross loss the result is the cap sentinel if any profit exists, else zero.
func ProfitFactor(grossProfit, grossLoss decimal.Decimal) decimal.Decimal {
	if grossLoss.IsZero() {
		if grossProfit.IsPositive() {
			return profitFactorCap
		}
		return decimal.Zero
	}
	return grossProfit.Div(grossLoss).Round(2)
}

// ComputeStreaks finds the longest winning and losing runs plus the currently
// open streak as of the last trade. Zero-P&L trades neither break nor extend
// a streak.
func ComputeStreaks(trades []TradeRecord) Streaks {
	s := Streaks{Current: Streak{Type: "none"}}

	var run int
	var runType string
	for _, t := range trades {
		var kind string
		switch {
		case t.PnL.IsPositive():
			kind = "win"
		case t.PnL.IsNegative():
			kind = "loss"
		default:
			continue
		}

		if kind == runType {
			run++
		} else {
			runType = kind
			run = 1
		}

		if kind == "win" && run > s.MaxWin {
			s.MaxWin = run
		}
		if kind == "loss" && run > s.MaxLoss {
			s.MaxLoss = run
		}
	}

	if runType != "" {
		s.Current = Streak{Type: runType, Length: run}
	}
	return s
}

// topWinners returns up to n trades with the highest P&L, descending. Equal
// P&L preserves date order.
func topWinners(trades []TradeRecord, n int) []TradeRecord {
	sorted := make([]TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PnL.GreaterThan(sorted[j].PnL)
	})
	return clamp(sorted, n)
}

// topLosers returns up to n trades with the lowest P&L, ascending.
func topLosers(trades []TradeRecord, n int) []TradeRecord {
	sorted := make([]TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PnL.LessThan(sorted[j].PnL)
	})
	return clamp(sorted, n)
}

func clamp(trades []TradeRecord, n int) []TradeRecord {
	if len(trades) > n {
		trades = trades[:n]
	}
	return trades
}
