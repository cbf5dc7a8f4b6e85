package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/absa"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ensemble", cfg.Strategy)
	assert.Equal(t, "", cfg.LexiconPath)
	assert.Equal(t, 7, cfg.ProximityWindow)
	assert.Equal(t, 5, cfg.DependencyFallbackWindow)
	assert.Equal(t, 3, cfg.ContextWindow)
	assert.InDelta(t, 0.35, cfg.PositiveThreshold, 1e-9)
	assert.InDelta(t, 0.35, cfg.NegativeThreshold, 1e-9)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("ABSA_STRATEGY", "contrast")
	t.Setenv("ABSA_PROXIMITY_WINDOW", "4")
	t.Setenv("ABSA_POSITIVE_THRESHOLD", "0.4")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "contrast", cfg.Strategy)
	assert.Equal(t, "json", cfg.LogFormat)

	engine := cfg.Engine()
	assert.Equal(t, 4, engine.ProximityWindow)
	assert.InDelta(t, 0.4, engine.Thresholds.Positive, 1e-9)
	assert.Equal(t, absa.DefaultConfig().ProximityDecay, engine.ProximityDecay)
}

func TestLoad_UnknownStrategy(t *testing.T) {
	t.Setenv("ABSA_STRATEGY", "v2")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, absa.ErrUnknownStrategy))
	assert.Contains(t, err.Error(), `"v2"`)
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("ABSA_STRATEGY", "v2")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.Strategy)
	require.Error(t, cfg.Validate())

	cfg.Strategy = "dependency"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative window", "ABSA_CONTEXT_WINDOW", "-1"},
		{"non-numeric window", "ABSA_PROXIMITY_WINDOW", "wide"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestResource(t *testing.T) {
	cfg := &Config{}
	pr, err := cfg.Resource()
	require.NoError(t, err)
	assert.Equal(t, absa.DefaultPolarityResource().Size(), pr.Size())

	cfg.LexiconPath = "testdata/does-not-exist.json"
	_, err = cfg.Resource()
	require.Error(t, err)
}
