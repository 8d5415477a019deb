// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Test     TestConfig     `toml:"test"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Mode            *string `toml:"mode"`
	WPM             *int    `toml:"wpm"`
	FontRun         *int    `toml:"font-run"`
	FontFlash       *int    `toml:"font-flash"`
	CenterThreshold *int    `toml:"center-threshold"`
	Watch           *bool   `toml:"watch"`
}

// TestConfig maps reading test settings.
type TestConfig struct {
	Passages *string `toml:"passages"`
	Passage  *string `toml:"passage"`
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
