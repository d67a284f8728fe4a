package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tubefetch/tubefetch/internal/download"
	"github.com/tubefetch/tubefetch/internal/engine"
)

// Default values
const (
	DefaultListenAddr    = "127.0.0.1:8080"
	DefaultLogLevel      = "info"
	DefaultFetchAttempts = 3
)

// Settings holds the application configuration, loaded from an optional
// config file and TUBEFETCH_* environment variables.
type Settings struct {
	ListenAddr string `mapstructure:"listen_addr"`
	LogLevel   string `mapstructure:"log_level"`

	// DownloadRoot is the parent directory for session directories; empty
	// means the system temp directory.
	DownloadRoot string `mapstructure:"download_root"`

	SubtitleLangs []string `mapstructure:"subtitle_langs"`

	Fetch struct {
		Attempts int           `mapstructure:"attempts"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"fetch"`

	Retry struct {
		MaxAttempts int           `mapstructure:"max_attempts"`
		BaseDelay   time.Duration `mapstructure:"base_delay"`
		MaxDelay    time.Duration `mapstructure:"max_delay"`
	} `mapstructure:"retry"`

	// Hardened enables the rotating android/ios client profiles in
	// addition to the default web identity.
	Hardened bool `mapstructure:"hardened"`

	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load reads configuration from the given file path, or from config.yaml in
// the working directory when the path is empty. A missing file is not an
// error; defaults and environment variables still apply.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TUBEFETCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	retry := download.DefaultRetryPolicy()
	defaults := map[string]any{
		"listen_addr": DefaultListenAddr,
		"log_level":   DefaultLogLevel,

		"download_root":  "",
		"subtitle_langs": engine.SubtitleLangs,

		"fetch.attempts": DefaultFetchAttempts,
		"fetch.timeout":  engine.DefaultFetchTimeout,

		"retry.max_attempts": retry.MaxAttempts,
		"retry.base_delay":   retry.BaseDelay,
		"retry.max_delay":    retry.MaxDelay,

		"hardened":      false,
		"poll_interval": download.DefaultPollInterval,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &settings, nil
}

// Profiles returns the client profile set selected by the configuration.
func (s *Settings) Profiles() []engine.ClientProfile {
	if s.Hardened {
		return engine.HardenedProfiles()
	}
	return engine.DefaultProfiles()
}

// DownloadConfig maps the settings onto a session service configuration.
func (s *Settings) DownloadConfig() download.Config {
	policy := download.DefaultRetryPolicy()
	if s.Retry.MaxAttempts > 0 {
		policy.MaxAttempts = s.Retry.MaxAttempts
	}
	if s.Retry.BaseDelay > 0 {
		policy.BaseDelay = s.Retry.BaseDelay
	}
	if s.Retry.MaxDelay > 0 {
		policy.MaxDelay = s.Retry.MaxDelay
	}

	return download.Config{
		Root:          s.DownloadRoot,
		Profiles:      s.Profiles(),
		Retry:         policy,
		FetchAttempts: s.Fetch.Attempts,
		FetchTimeout:  s.Fetch.Timeout,
		PollInterval:  s.PollInterval,
	}
}
