package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultEngineConfig_IsValid(t *testing.T) {
	cfg := DefaultEngineConfig()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Pillars, PillarCount)
	assert.Equal(t, 0, cfg.LevelIndex(LevelBC))
	assert.Equal(t, -1, cfg.LevelIndex(Level("CEO")))
}

func TestLoadEngineConfig_EmptyPathUsesDefault(t *testing.T) {
	cfg, err := LoadEngineConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineConfig(), cfg)
}

func TestLoadEngineConfig_OverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
version: "18pilar-2026.1"
damping: 0.6
zones:
  success: 80
  warning: 55
`)

	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "18pilar-2026.1", cfg.Version)
	assert.InDelta(t, 0.6, cfg.Damping, 1e-9)
	assert.Equal(t, ZoneThresholds{Success: 80, Warning: 55}, cfg.Zones)
	assert.Len(t, cfg.Pillars, PillarCount, "untouched sections keep their defaults")
}

func TestLoadEngineConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadEngineConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadEngineConfig(writeConfigFile(t, "damping: [oops"))
		require.Error(t, err)
	})

	t.Run("invalid calibration", func(t *testing.T) {
		_, err := LoadEngineConfig(writeConfigFile(t, "damping: 1.5\n"))
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "damping", cfgErr.Key)
	})
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
		key    string
	}{
		{name: "empty version", mutate: func(c *EngineConfig) { c.Version = "" }, key: "version"},
		{name: "missing pillar", mutate: func(c *EngineConfig) { c.Pillars = c.Pillars[:17] }, key: "pillars"},
		{name: "duplicate pillar", mutate: func(c *EngineConfig) { c.Pillars[1].ID = 1 }, key: "pillars[1]"},
		{name: "unknown metric", mutate: func(c *EngineConfig) { c.Pillars[3].Metric = "revenue" }, key: "pillars[4]"},
		{name: "unknown category", mutate: func(c *EngineConfig) { c.Pillars[0].Category = "mood" }, key: "pillars[1]"},
		{name: "no breakpoints", mutate: func(c *EngineConfig) { c.Breakpoints = nil }, key: "breakpoints"},
		{name: "ascending breakpoints", mutate: func(c *EngineConfig) { c.Breakpoints[1].Min = 0.95 }, key: "breakpoints[1]"},
		{name: "no catch-all", mutate: func(c *EngineConfig) { c.Breakpoints[4].Min = 0.1 }, key: "breakpoints"},
		{name: "score out of range", mutate: func(c *EngineConfig) { c.Breakpoints[0].Score = 6 }, key: "breakpoints[0]"},
		{name: "zero epsilon", mutate: func(c *EngineConfig) { c.Epsilon = 0 }, key: "epsilon"},
		{name: "duplicate level", mutate: func(c *EngineConfig) { c.Levels[1].Code = LevelBC }, key: "levels"},
		{name: "unknown tier", mutate: func(c *EngineConfig) { c.Levels[1].TeamMinimums = map[Level]int{LevelRM: 1} }, key: "levels[SBC].team_minimums"},
		{name: "inverted zones", mutate: func(c *EngineConfig) { c.Zones.Warning = 80 }, key: "zones"},
		{name: "zero margin threshold", mutate: func(c *EngineConfig) { c.ProDem.SaveMarginPercent = 0 }, key: "prodem"},
		{name: "target band", mutate: func(c *EngineConfig) { c.Synthesis.TargetBand = 6 }, key: "synthesis.target_band"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestSortedPillars_DoesNotMutate(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Pillars[0], cfg.Pillars[17] = cfg.Pillars[17], cfg.Pillars[0]

	sorted := cfg.SortedPillars()
	for i, p := range sorted {
		assert.Equal(t, i+1, p.ID)
	}
	assert.Equal(t, 18, cfg.Pillars[0].ID)
}

func TestLevelConfig_HeadcountFloor(t *testing.T) {
	cfg := DefaultEngineConfig()
	assert.Equal(t, 0, cfg.Levels[cfg.LevelIndex(LevelBC)].HeadcountFloor())
	assert.Equal(t, 5, cfg.Levels[cfg.LevelIndex(LevelBM)].HeadcountFloor())
}

func TestEngineConfig_Clone(t *testing.T) {
	cfg := DefaultEngineConfig()
	clone := cfg.Clone()
	require.Equal(t, cfg, clone)

	bm := clone.LevelIndex(LevelBM)
	clone.Levels[bm].TeamMinimums[LevelBC] = 99
	clone.Levels[bm].Targets.TeamMargin = 1
	clone.Breakpoints[0].Min = 0.0001
	clone.Pillars[0].Name = "renamed"

	assert.Equal(t, 4, cfg.Levels[bm].TeamMinimums[LevelBC])
	assert.Equal(t, float64(15000), cfg.Levels[bm].Targets.TeamMargin)
	assert.Equal(t, 0.9, cfg.Breakpoints[0].Min)
	assert.Equal(t, "Visi & Tujuan Karier", cfg.Pillars[0].Name)
	assert.Equal(t, DefaultEngineConfig(), cfg)
}
