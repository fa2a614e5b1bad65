/* Copyright (c) 2021 David Bulkow */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dbulkow/roomreserve/internal/getenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, RESERVE_SLOT etc.
const EnvPrefix = "RESERVE"

type Config struct {
	Locale string   `yaml:"locale"`
	Rooms  []string `yaml:"rooms"`
	Slot   string   `yaml:"slot"`
	Name   string   `yaml:"name,omitempty"`
	Listen string   `yaml:"listen"`
	Log    Log      `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var Locales = []string{"ja", "en"}

// File is the default config file location.
func File() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return filepath.Join(home, ".reserve.yaml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "reserve.yaml")
}

// Default returns the settings used when no file exists. The slot lives next
// to the config file.
func Default(path string) *Config {
	return &Config{
		Locale: "ja",
		Rooms:  []string{"A", "B", "C"},
		Slot:   "file:" + filepath.Join(filepath.Dir(path), "reserve"),
		Listen: "localhost:8080",
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path on top of the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default(path)

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(getenv.NewEnv(EnvPrefix))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv(env *getenv.Env) {
	c.Locale = env.Get("LOCALE", c.Locale)
	c.Rooms = env.GetList("ROOMS", c.Rooms)
	c.Slot = env.Get("SLOT", c.Slot)
	c.Name = env.Get("NAME", c.Name)
	c.Listen = env.Get("LISTEN", c.Listen)
	c.Log.Level = env.Get("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.Get("LOG_FORMAT", c.Log.Format)
}

func (c *Config) Validate() error {
	known := false
	for _, l := range Locales {
		if c.Locale == l {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("locale \"%s\" not one of %s", c.Locale, strings.Join(Locales, ", "))
	}

	if len(c.Rooms) == 0 {
		return errors.New("at least one room is required")
	}

	seen := make(map[string]bool)
	for _, r := range c.Rooms {
		if strings.TrimSpace(r) == "" {
			return errors.New("room names must not be blank")
		}
		if seen[r] {
			return fmt.Errorf("room \"%s\" listed twice", r)
		}
		seen[r] = true
	}

	if c.Slot == "" {
		return errors.New("slot is required")
	}

	return nil
}

// Save writes c to path, replacing any previous file.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return err
	}

	newfile := path + "-"

	if err := os.WriteFile(newfile, b, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return os.Rename(newfile, path)
}
