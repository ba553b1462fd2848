// Package config reads the optional cipollino.yaml settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/cipollino/internal/logging"
	"github.com/aretw0/cipollino/pkg/persistence"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no path is given.
const FileName = "cipollino.yaml"

// Config holds user settings. Zero fields in the file keep their defaults.
type Config struct {
	LogLevel        string   `yaml:"log_level" json:"log_level"`
	AudioExtensions []string `yaml:"audio_extensions" json:"audio_extensions"`
	Prune           bool     `yaml:"prune" json:"prune"`
	HistoryLimit    int      `yaml:"history_limit" json:"history_limit"`
	Addr            string   `yaml:"addr" json:"addr"`
}

func Default() Config {
	return Config{
		LogLevel:        "info",
		AudioExtensions: append([]string(nil), persistence.DefaultAudioExtensions...),
		Prune:           true,
		HistoryLimit:    1000,
		Addr:            "localhost:8080",
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects settings no component can honour.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	for _, ext := range c.AudioExtensions {
		if ext == "" || strings.ContainsAny(ext, `./\`) {
			return fmt.Errorf("invalid audio extension %q", ext)
		}
	}
	return nil
}

// PersistenceOptions translates the file settings for save and load.
func (c Config) PersistenceOptions() []persistence.Option {
	return []persistence.Option{
		persistence.WithPrune(c.Prune),
		persistence.WithAudioExtensions(c.AudioExtensions...),
	}
}
