// Package config loads qcreview settings from an optional YAML file, the
// QCREVIEW_ environment and built-in defaults, in that order of precedence
// after command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/alexanderramin/qcreview/internal/report"
	"github.com/alexanderramin/qcreview/internal/wheel"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "QCREVIEW"

// DirFunc returns the configuration directory. Tests replace it.
var DirFunc = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "qcreview"), nil
}

// DefaultCannedComments are offered by the canned-comment picker when the
// config lists none.
var DefaultCannedComments = []string{
	"Motion artifact",
	"Signal dropout",
	"Susceptibility distortion",
	"Misregistration",
	"Incomplete brain coverage",
	"Noisy, check acquisition",
}

// Config is the resolved settings.
type Config struct {
	Reviewer       string
	Sidecar        string
	Theme          string
	LogLevel       string
	LogFile        string
	CannedComments []string
	ZoomInitial    int

	// File is the config file that was read, empty when none was found.
	File string
}

// Dark reports whether the dark theme is selected.
func (c *Config) Dark() bool { return c.Theme == "dark" }

// New returns a viper instance with search paths, env binding and
// defaults. An explicit file replaces the search path.
func New(file string) (*viper.Viper, error) {
	dir, err := DirFunc()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reviewer", "")
	v.SetDefault("sidecar", report.DefaultFileName)
	v.SetDefault("theme", "light")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "qcreview.log"))
	v.SetDefault("canned_comments", DefaultCannedComments)
	v.SetDefault("zoom.initial", wheel.ZoomInitial)
	return v, nil
}

// Load reads the config file if there is one and resolves every key. A
// missing file is only an error when it was named explicitly.
func Load(v *viper.Viper, explicit bool) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Reviewer:       strings.TrimSpace(v.GetString("reviewer")),
		Sidecar:        v.GetString("sidecar"),
		Theme:          strings.ToLower(v.GetString("theme")),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
		LogFile:        v.GetString("log.file"),
		CannedComments: v.GetStringSlice("canned_comments"),
		ZoomInitial:    v.GetInt("zoom.initial"),
		File:           v.ConfigFileUsed(),
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadFile is New followed by Load.
func LoadFile(file string) (*Config, error) {
	v, err := New(file)
	if err != nil {
		return nil, err
	}
	return Load(v, file != "")
}

func (c *Config) validate() error {
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("theme must be light or dark, got %q", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Sidecar == "" {
		c.Sidecar = report.DefaultFileName
	}
	if c.ZoomInitial <= wheel.ZoomMin || c.ZoomInitial >= wheel.ZoomMax {
		return fmt.Errorf("zoom.initial must be between %d and %d exclusive, got %d", wheel.ZoomMin, wheel.ZoomMax, c.ZoomInitial)
	}
	return nil
}
