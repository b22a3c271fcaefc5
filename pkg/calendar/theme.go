package calendar

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/traderecap/traderecap/pkg/errors"
)

// Theme holds the cell colors for the SVG calendar.
type Theme struct {
	Empty     string `yaml:"empty"`
	Profit    string `yaml:"profit"`
	Loss      string `yaml:"loss"`
	Breakeven string `yaml:"breakeven"`
	Text      string `yaml:"text"`
}

// DefaultTheme returns the built-in contribution-graph palette.
func DefaultTheme() Theme {
	return Theme{
		Empty:     "#ebedf0",
		Profit:    "#40c463",
		Loss:      "#f85149",
		Breakeven: "#d4a72c",
		Text:      "#57606a",
	}
}

// LoadTheme reads a YAML theme file. Fields left unset in the file keep their
// default values.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()

	data, err := os.ReadFile(path)
	if err != nil {
		return theme, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return DefaultTheme(), errors.WrapParse("yaml", path, err)
	}
	return theme, nil
}

// color returns the fill color for a day class.
func (t Theme) color(c DayClass) string {
	switch c {
	case ClassProfit:
		return t.Profit
	case ClassLoss:
		return t.Loss
	case ClassBreakeven:
		return t.Breakeven
	default:
		return t.Empty
	}
}
