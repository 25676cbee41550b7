package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Experiment.Lengths)
	assert.Nil(t, cfg.Trend.Trials)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[experiment]
lengths = [10, 20]
seed = 99
sentence = "HELLO WORLD "
save = true

[trend]
trials = 30
random-window = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	exp := cfg.Experiment
	require.NotNil(t, exp.Lengths)
	assert.Equal(t, []int{10, 20}, *exp.Lengths)
	require.NotNil(t, exp.Seed)
	assert.Equal(t, int64(99), *exp.Seed)
	require.NotNil(t, exp.Sentence)
	assert.Equal(t, "HELLO WORLD ", *exp.Sentence)
	assert.Nil(t, exp.Repeat, "repeat stays unset")
	require.NotNil(t, exp.Save)
	assert.True(t, *exp.Save)

	require.NotNil(t, cfg.Trend.Trials)
	assert.Equal(t, 30, *cfg.Trend.Trials)
	assert.Nil(t, cfg.Trend.Parallel)
	require.NotNil(t, cfg.Trend.RandomWindow)
	assert.True(t, *cfg.Trend.RandomWindow)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[experiment]\nlenghts = [1]\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lenghts")
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/cfg", "subcrack", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/data", "subcrack", "subcrack.db"), DefaultDBPath())
}
