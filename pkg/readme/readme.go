// Package readme renders the period statistics block and splices it into a
// README between literal marker comments. Failures here are the only ones the
// tools surface to the user, and even then only as warnings.
package readme

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	md "github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/traderecap/traderecap/internal/format"
	"github.com/traderecap/traderecap/pkg/errors"
	"github.com/traderecap/traderecap/pkg/period"
)

// Marker comments delimit the managed README section. Everything between
// them is replaced on every run; everything outside is left untouched.
const (
	StartMarker = "<!-- TRADING-STATS:START -->"
	EndMarker   = "<!-- TRADING-STATS:END -->"
)

var titler = cases.Title(language.English)

// Stats bundles the period summaries and projection rendered into the README
// block.
type Stats struct {
	CurrentWeek  period.Summary
	LastWeek     period.Summary
	CurrentMonth period.Summary
	LastMonth    period.Summary
	Projection   period.Projection
	GeneratedAt  time.Time
}

// RenderBlock writes the statistics block as Markdown.
func RenderBlock(w io.Writer, s Stats) error {
	doc := md.NewMarkdown(w)

	doc.H2("Trading Statistics").LF()
	doc.Table(md.TableSet{
		Header: []string{"Period", "Trades", "Net P&L", "Win Rate"},
		Rows: [][]string{
			periodRow("current week", s.CurrentWeek),
			periodRow("last week", s.LastWeek),
			periodRow("current month", s.CurrentMonth),
			periodRow("last month", s.LastMonth),
		},
	})

	doc.H3("Year-to-Date Projection").LF()
	p := s.Projection
	doc.Table(md.TableSet{
		Header: []string{"", "Trades", "Net P&L"},
		Rows: [][]string{
			{"Actual", format.Count(p.ActualTrades), format.PnL(p.ActualPnL)},
			{"Projected", format.Count(p.ProjectedTrades), format.PnL(p.ProjectedPnL)},
		},
	})
	doc.PlainTextf("%d days remaining in the year.", p.DaysRemaining).LF()

	doc.PlainTextf("_Last updated: %s_", s.GeneratedAt.UTC().Format(time.RFC3339)).LF()

	return doc.Build()
}

// periodRow renders one period summary as a table row.
func periodRow(kind string, s period.Summary) []string {
	return []string{
		fmt.Sprintf("%s (%s)", titler.String(kind), s.Label),
		format.Count(s.Trades),
		format.PnL(s.PnL),
		format.Rate(s.WinRate),
	}
}

// Update splices block between the markers in the README at path. A missing
// file and missing markers are reported as distinct errors so callers can
// warn accordingly.
func Update(path, block string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	content := string(data)

	start := strings.Index(content, StartMarker)
	end := strings.Index(content, EndMarker)
	if start == -1 || end == -1 || end < start {
		return errors.NewMarkerError(path, StartMarker)
	}

	updated := content[:start+len(StartMarker)] +
		"\n" + strings.TrimSpace(block) + "\n" +
		content[end:]

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
