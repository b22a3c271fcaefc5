package calendar

import (
	"fmt"
	"io"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/traderecap/traderecap/internal/format"
)

// Fixed grid geometry: 53 week columns by 7 weekday rows, 12px cells with
// 3px gaps, anchored to the weekday of January 1st.
const (
	gridWeeks  = 53
	cellSize   = 12
	cellGap    = 3
	leftMargin = 30
	topMargin  = 20
	padding    = 10
)

// RenderOption is a functional option for SVG rendering.
type RenderOption func(*renderer)

// WithTheme sets the cell color theme.
func WithTheme(theme Theme) RenderOption {
	return func(r *renderer) {
		r.theme = theme
	}
}

// WithGeneratedAt sets the embedded generation timestamp. It defaults to the
// current time; tests pin it for byte-identical output.
func WithGeneratedAt(t time.Time) RenderOption {
	return func(r *renderer) {
		r.generatedAt = t
	}
}

type renderer struct {
	theme       Theme
	generatedAt time.Time
}

// RenderSVG writes the calendar as a fixed-size SVG document. Output is
// deterministic for identical input apart from the generation timestamp in
// the document description.
func (y *Year) RenderSVG(w io.Writer, opts ...RenderOption) error {
	r := &renderer{
		theme:       DefaultTheme(),
		generatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(r)
	}

	width := leftMargin + gridWeeks*(cellSize+cellGap) + padding
	height := topMargin + 7*(cellSize+cellGap) + padding

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("%d trading calendar", y.Year))
	canvas.Desc(fmt.Sprintf("generated %s", r.generatedAt.Format(time.RFC3339)))

	textStyle := fmt.Sprintf(`font-family="sans-serif" font-size="9" fill="%s"`, r.theme.Text)

	// Weekday labels on Monday, Wednesday, and Friday rows (Sunday-first grid).
	for _, wd := range []struct {
		row   int
		label string
	}{{1, "Mon"}, {3, "Wed"}, {5, "Fri"}} {
		yPos := topMargin + wd.row*(cellSize+cellGap) + cellSize - 2
		canvas.Text(2, yPos, wd.label, textStyle)
	}

	offset := int(time.Date(y.Year, time.January, 1, 0, 0, 0, 0, time.Local).Weekday())

	// Month labels above the column where each month begins.
	lastCol := -1
	for m := time.January; m <= time.December; m++ {
		first := time.Date(y.Year, m, 1, 0, 0, 0, 0, time.Local)
		col := (offset + first.YearDay() - 1) / 7
		if col >= gridWeeks || col == lastCol {
			continue
		}
		lastCol = col
		x := leftMargin + col*(cellSize+cellGap)
		canvas.Text(x, topMargin-6, first.Format("Jan"), textStyle)
	}

	for _, day := range y.Days {
		idx := offset + day.Date.YearDay() - 1
		col := idx / 7
		if col >= gridWeeks {
			// A leap year starting on Saturday spills one cell past the
			// fixed grid; that day is dropped from the rendering.
			continue
		}
		row := idx % 7

		x := leftMargin + col*(cellSize+cellGap)
		yPos := topMargin + row*(cellSize+cellGap)

		canvas.Group()
		canvas.Title(tooltip(day))
		canvas.Rect(x, yPos, cellSize, cellSize,
			fmt.Sprintf(`rx="2" fill="%s"`, r.theme.color(day.Class)))
		canvas.Gend()
	}

	canvas.End()
	return nil
}

// tooltip renders the per-cell hover text.
func tooltip(day Day) string {
	date := day.Date.Format("2006-01-02")
	if day.Class == ClassEmpty {
		return fmt.Sprintf("%s: no trades", date)
	}
	unit := "trades"
	if day.Trades == 1 {
		unit = "trade"
	}
	return fmt.Sprintf("%s: %s (%d %s)", date, format.PnL(day.PnL), day.Trades, unit)
}
