package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderecap/traderecap/internal/cmd/output"
	"github.com/traderecap/traderecap/pkg/errors"
)

type sample struct {
	Period string `json:"period" yaml:"period"`
	Trades int    `json:"trades" yaml:"trades"`
}

func sampleData() output.Data {
	return output.Data{
		Headers:    []string{"Period", "Trades"},
		Rows:       [][]string{{"2026-W23", "3"}},
		Alignment:  []output.Align{output.AlignLeft, output.AlignRight},
		Structured: sample{Period: "2026-W23", Trades: 3},
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON)

	require.NoError(t, f.Format(&buf, sampleData()))

	out := buf.String()
	assert.Contains(t, out, `"period": "2026-W23"`)
	assert.Contains(t, out, `"trades": 3`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatYAML)

	require.NoError(t, f.Format(&buf, sampleData()))

	out := buf.String()
	assert.Contains(t, out, "period: 2026-W23")
	assert.Contains(t, out, "trades: 3")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)

	require.NoError(t, f.Format(&buf, sampleData()))

	out := buf.String()
	assert.Contains(t, out, "2026-W23")
	assert.Contains(t, out, "3")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    output.Format
		wantErr bool
	}{
		{"table", output.FormatTable, false},
		{"json", output.FormatJSON, false},
		{"JSON", output.FormatJSON, false},
		{"yaml", output.FormatYAML, false},
		{"", output.Format(""), false},
		{"xml", output.Format(""), true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := output.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
	assert.Equal(t, output.FormatJSON, output.DetectFormat("json"))
}
