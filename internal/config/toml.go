// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Experiment ExperimentConfig `toml:"experiment"`
	Trend      TrendConfig      `toml:"trend"`
}

// ExperimentConfig maps experiment settings.
type ExperimentConfig struct {
	Lengths    *[]int  `toml:"lengths"`
	Seed       *int64  `toml:"seed"`
	Repeat     *int    `toml:"repeat"`
	Sentence   *string `toml:"sentence"`
	SampleFile *string `toml:"sample-file"`
	Save       *bool   `toml:"save"`
}

// TrendConfig maps trend settings.
type TrendConfig struct {
	Trials       *int  `toml:"trials"`
	Parallel     *int  `toml:"parallel"`
	RandomWindow *bool `toml:"random-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
