package app

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/traderecap/traderecap/internal/cmd/output"
	"github.com/traderecap/traderecap/internal/format"
	"github.com/traderecap/traderecap/pkg/calendar"
	"github.com/traderecap/traderecap/pkg/dashboard"
	"github.com/traderecap/traderecap/pkg/errors"
	"github.com/traderecap/traderecap/pkg/period"
	"github.com/traderecap/traderecap/pkg/readme"
)

// NewReadmeCommand creates the readme command. It renders the period
// statistics block and splices it into the README between the marker
// comments. Failures are warnings; the command always exits 0.
func (a *App) NewReadmeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "readme",
		Short: "Update the README statistics section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.runReadme()
			return nil
		},
	}
}

func (a *App) runReadme() {
	agg := period.New(a.Store(), period.WithLogger(a.logger))
	now := time.Now()

	stats := readme.Stats{
		CurrentWeek:  agg.CurrentWeek(),
		LastWeek:     agg.LastWeek(),
		CurrentMonth: agg.CurrentMonth(),
		LastMonth:    agg.LastMonth(),
		Projection:   agg.YearToDate(now.Year()),
		GeneratedAt:  now,
	}

	var block strings.Builder
	if err := readme.RenderBlock(&block, stats); err != nil {
		a.logger.Warn().Err(err).Msg("README update skipped: rendering failed")
		fmt.Println("⚠️  README update skipped")
		return
	}

	if err := readme.Update(a.config.ReadmePath, block.String()); err != nil {
		switch {
		case errors.IsMarkerNotFound(err):
			a.logger.Warn().Err(err).Str("path", a.config.ReadmePath).Msg("README markers not found")
		case stderrors.Is(err, fs.ErrNotExist):
			a.logger.Warn().Err(err).Str("path", a.config.ReadmePath).Msg("README file not found")
		default:
			a.logger.Warn().Err(err).Str("path", a.config.ReadmePath).Msg("README update failed")
		}
		fmt.Println("⚠️  README update skipped")
		return
	}

	fmt.Printf("✅ README statistics updated (%s)\n", a.config.ReadmePath)
}

// NewCalendarCommand creates the calendar command. It renders the SVG
// calendar and its Markdown statistics block for one year.
func (a *App) NewCalendarCommand() *cobra.Command {
	var year int
	var themeFile string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Render the SVG trading calendar for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			if themeFile == "" {
				themeFile = a.config.ThemeFile
			}
			a.runCalendar(year, themeFile)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default: current year)")
	cmd.Flags().StringVar(&themeFile, "theme", "", "YAML theme file for cell colors")
	return cmd
}

func (a *App) runCalendar(year int, themeFile string) {
	theme := calendar.DefaultTheme()
	if themeFile != "" {
		loaded, err := calendar.LoadTheme(themeFile)
		if err != nil {
			a.logger.Warn().Err(err).Str("path", themeFile).Msg("theme file unusable, using defaults")
		}
		theme = loaded
	}

	cal := calendar.Build(a.Store(), year)

	if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
		a.logger.Error().Err(err).Str("dir", a.config.OutputDir).Msg("cannot create output directory")
		fmt.Println("⚠️  calendar not written")
		return
	}

	svgPath := filepath.Join(a.config.OutputDir, fmt.Sprintf("calendar-%d.svg", year))
	if err := a.writeFile(svgPath, func(w io.Writer) error {
		return cal.RenderSVG(w, calendar.WithTheme(theme))
	}); err != nil {
		a.reportWriteError(svgPath, err)
		return
	}

	mdPath := filepath.Join(a.config.OutputDir, fmt.Sprintf("calendar-%d.md", year))
	if err := a.writeFile(mdPath, cal.WriteMarkdown); err != nil {
		a.reportWriteError(mdPath, err)
		return
	}

	fmt.Printf("✅ %d calendar rendered (%d trading days, %s)\n",
		year, cal.Stats.TradingDays, format.PnL(cal.Stats.TotalPnL))
}

// NewDashboardCommand creates the dashboard command. It writes the
// consolidated dashboard JSON artifact.
func (a *App) NewDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Write the consolidated dashboard JSON artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.runDashboard()
			return nil
		},
	}
}

func (a *App) runDashboard() {
	d := a.builder().Dashboard()

	path := filepath.Join(a.config.OutputDir, "dashboard.json")
	if err := a.writeJSON(path, d); err != nil {
		a.reportWriteError(path, err)
		return
	}
	fmt.Printf("✅ dashboard written (%d trades, %s)\n", d.TotalTrades, format.PnL(d.NetPnL))
}

// NewMonthlyCommand creates the monthly command. It writes the consolidated
// per-month JSON artifact.
func (a *App) NewMonthlyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Write the consolidated monthly JSON artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.runMonthly()
			return nil
		},
	}
}

func (a *App) runMonthly() {
	report := a.builder().Monthly()

	path := filepath.Join(a.config.OutputDir, "monthly.json")
	if err := a.writeJSON(path, report); err != nil {
		a.reportWriteError(path, err)
		return
	}
	fmt.Printf("✅ monthly report written (%d months)\n", len(report.Months))
}

// NewStatsCommand creates the stats command. It prints the period summaries
// and projection to the terminal in the selected format.
func (a *App) NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print period statistics to the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStats(cmd)
		},
	}
}

// statsOutput is the structured form of the stats command output, used for
// JSON and YAML rendering.
type statsOutput struct {
	Periods    []period.Summary  `json:"periods"`
	Projection period.Projection `json:"projection"`
}

func (a *App) runStats(cmd *cobra.Command) error {
	agg := period.New(a.Store(), period.WithLogger(a.logger))

	out := statsOutput{
		Periods: []period.Summary{
			agg.CurrentWeek(),
			agg.LastWeek(),
			agg.CurrentMonth(),
			agg.LastMonth(),
		},
		Projection: agg.YearToDate(time.Now().Year()),
	}

	rows := make([][]string, 0, len(out.Periods)+1)
	for _, s := range out.Periods {
		rows = append(rows, []string{s.Label, format.Count(s.Trades), format.PnL(s.PnL), format.Rate(s.WinRate)})
	}
	rows = append(rows, []string{
		"projected",
		format.Count(out.Projection.ProjectedTrades),
		format.PnL(out.Projection.ProjectedPnL),
		"",
	})

	formatName, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.DetectFormat(string(formatName)))
	return formatter.Format(cmd.OutOrStdout(), output.Data{
		Headers:    []string{"Period", "Trades", "Net P&L", "Win Rate"},
		Rows:       rows,
		Alignment:  []output.Align{output.AlignLeft, output.AlignRight, output.AlignRight, output.AlignRight},
		Structured: out,
	})
}

// NewAllCommand creates the all command, running every report in sequence.
func (a *App) NewAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run readme, calendar, dashboard, and monthly in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.runReadme()
			a.runCalendar(time.Now().Year(), a.config.ThemeFile)
			a.runDashboard()
			a.runMonthly()
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("traderecap %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}

// builder constructs a dashboard builder with the configured metadata.
func (a *App) builder() *dashboard.Builder {
	return dashboard.NewBuilder(a.Store(),
		dashboard.WithLogger(a.logger),
		dashboard.WithCostBasisBounds(a.config.MinCostBasis, a.config.MaxCostBasis),
	)
}

// writeFile creates path (and the output directory) and streams content into
// it via render.
func (a *App) writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// writeJSON marshals v with indentation and writes it to path.
func (a *App) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// reportWriteError logs a final-write failure, distinguishing missing paths
// from other filesystem errors. The command still exits 0; a missing report
// is the worst case, not a system failure.
func (a *App) reportWriteError(path string, err error) {
	if stderrors.Is(err, fs.ErrNotExist) {
		a.logger.Error().Err(err).Str("path", path).Msg("output path not found")
	} else {
		a.logger.Error().Err(err).Str("path", path).Msg("write failed")
	}
	fmt.Printf("⚠️  %s not written\n", filepath.Base(path))
}
