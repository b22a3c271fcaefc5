package calendar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderecap/traderecap/pkg/calendar"
	"github.com/traderecap/traderecap/pkg/errors"
)

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profit: \"#00ff00\"\nloss: \"#ff0000\"\n"), 0o644))

	theme, err := calendar.LoadTheme(path)
	require.NoError(t, err)

	assert.Equal(t, "#00ff00", theme.Profit)
	assert.Equal(t, "#ff0000", theme.Loss)
	// Unset fields keep the defaults.
	assert.Equal(t, calendar.DefaultTheme().Empty, theme.Empty)
	assert.Equal(t, calendar.DefaultTheme().Text, theme.Text)
}

func TestLoadThemeMissingFile(t *testing.T) {
	theme, err := calendar.LoadTheme(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, calendar.DefaultTheme(), theme)
}

func TestLoadThemeMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profit: [unterminated"), 0o644))

	theme, err := calendar.LoadTheme(path)

	require.Error(t, err)
	assert.Equal(t, calendar.DefaultTheme(), theme)
}
