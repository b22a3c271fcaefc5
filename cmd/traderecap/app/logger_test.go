package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		env    string
		want   string
	}{
		{"default", Config{}, "", "info"},
		{"explicit flag wins", Config{LogLevel: "error", Verbose: true}, "debug", "error"},
		{"invalid explicit falls back", Config{LogLevel: "loud"}, "", "info"},
		{"verbose", Config{Verbose: true}, "", "debug"},
		{"quiet", Config{Quiet: true}, "", "warn"},
		{"verbose and quiet uses quiet", Config{Verbose: true, Quiet: true}, "", "warn"},
		{"env variable", Config{}, "trace", "trace"},
		{"verbose beats env", Config{Verbose: true}, "warn", "debug"},
		{"invalid env falls back", Config{}, "chatty", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	assert.Equal(t, "info", validateLogLevel("verbose"))
	assert.Equal(t, "info", validateLogLevel(""))
}
