package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/readpace/internal/config"
	"github.com/verte-zerg/readpace/internal/model"
	"github.com/verte-zerg/readpace/internal/passage"
)

func validCfg() model.Config {
	return model.Config{Mode: "run", WPM: 300, FontRun: 18, FontFlash: 48}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validCfg(), "", false))

	cfg := validCfg()
	cfg.Mode = "scroll"
	assert.Error(t, validateConfig(cfg, "", false))

	cfg = validCfg()
	cfg.CenterThreshold = -1
	assert.Error(t, validateConfig(cfg, "", false))

	cfg = validCfg()
	cfg.Watch = true
	assert.Error(t, validateConfig(cfg, "", false))
	assert.NoError(t, validateConfig(cfg, "notes.txt", false))

	assert.Error(t, validateConfig(validCfg(), "notes.txt", true))
}

func TestStatsConfig(t *testing.T) {
	cfg, err := statsConfig("2026-01-02", 10, 3)
	require.NoError(t, err)
	require.NotNil(t, cfg.Since)
	assert.Equal(t, 2026, cfg.Since.Year())
	assert.Equal(t, 10, cfg.Last)
	assert.Equal(t, 3, cfg.Window)

	_, err = statsConfig("yesterday", 0, 3)
	assert.Error(t, err)
	_, err = statsConfig("", -1, 3)
	assert.Error(t, err)
	_, err = statsConfig("", 0, 0)
	assert.Error(t, err)
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	meta, err := toml.Decode(defaultConfigTemplate(), &cfg)
	require.NoError(t, err)
	assert.Empty(t, meta.Undecoded())
	assert.Nil(t, cfg.Practice.WPM)

	// every commented key is a known key once uncommented
	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
			if i := strings.Index(line, "#"); i > 0 {
				line = line[:i]
			}
		}
		lines = append(lines, line)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Practice.Mode)
	assert.Equal(t, defaultMode, *loaded.Practice.Mode)
	require.NotNil(t, loaded.Test.Passage)
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	var wpm int
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().IntVar(&wpm, "wpm", 200, "")
	value := 400

	applyIntConfig(cmd, "wpm", &wpm, &value)
	assert.Equal(t, 400, wpm)

	require.NoError(t, cmd.Flags().Set("wpm", "250"))
	applyIntConfig(cmd, "wpm", &wpm, &value)
	assert.Equal(t, 250, wpm)

	applyIntConfig(cmd, "wpm", &wpm, nil)
	assert.Equal(t, 250, wpm)
}

func TestWritePassages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePassages(&buf, passage.Default()))
	out := buf.String()
	for _, id := range passage.Default().IDs() {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "questions")
}
