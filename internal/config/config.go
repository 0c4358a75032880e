package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tradejournal/internal/domain/journal"
)

// Config is the journal configuration shared by the CLI, TUI and API.
type Config struct {
	Storage            string `mapstructure:"storage" yaml:"storage"`
	DiagnosticLog      string `mapstructure:"diagnostic_log" yaml:"diagnostic_log"`
	AggregateMode      string `mapstructure:"aggregate_mode" yaml:"aggregate_mode"`
	LogLevel           string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat          string `mapstructure:"log_format" yaml:"log_format"`
	LogOutput          string `mapstructure:"log_output" yaml:"log_output"`
	APIAddr            string `mapstructure:"api_addr" yaml:"api_addr"`
	AlphaVantageAPIKey string `mapstructure:"alphavantage_api_key" yaml:"alphavantage_api_key,omitempty"`
	Tracing            bool   `mapstructure:"tracing" yaml:"tracing"`
}

const (
	EnvPrefix      = "TRADEJOURNAL"
	DefaultFile    = "tradejournal"
	DefaultAPIAddr = ":8080"
)

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage:       "csv:trades.csv",
		DiagnosticLog: "journal-errors.log",
		AggregateMode: string(journal.AggregateLast),
		LogLevel:      "info",
		LogFormat:     "console",
		LogOutput:     "stderr",
		APIAddr:       DefaultAPIAddr,
	}
}

// Load reads path, or ./tradejournal.{yaml,yml,json} when path is empty, and
// overlays TRADEJOURNAL_* environment variables. A missing default file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	defaults := map[string]interface{}{
		"storage":              def.Storage,
		"diagnostic_log":       def.DiagnosticLog,
		"aggregate_mode":       def.AggregateMode,
		"log_level":            def.LogLevel,
		"log_format":           def.LogFormat,
		"log_output":           def.LogOutput,
		"api_addr":             def.APIAddr,
		"alphavantage_api_key": "",
		"tracing":              false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("alphavantage_api_key", EnvPrefix+"_ALPHAVANTAGE_API_KEY", "ALPHAVANTAGE_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName(DefaultFile)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage == "" {
		return errors.New("storage is required")
	}
	if c.DiagnosticLog == "" {
		return errors.New("diagnostic_log is required")
	}
	if _, err := journal.ParseAggregateMode(c.AggregateMode); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Mode returns the validated aggregate mode.
func (c *Config) Mode() journal.AggregateMode {
	m, _ := journal.ParseAggregateMode(c.AggregateMode)
	return m
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
