package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration options for snyk-to-html
type Config struct {
	// Input is a report file, a directory of reports, or "-" for stdin
	Input string `mapstructure:"input"`

	// Output is the report file path; empty writes to stdout
	Output string `mapstructure:"output"`

	// Template is a built-in template set name or a path to a custom template
	Template string `mapstructure:"template"`

	// Format is the output format: html, text or cyclonedx
	Format string `mapstructure:"format"`

	// Summary omits the long-form overview and details sections
	Summary bool `mapstructure:"summary"`

	// Remediation includes actionable remediation advice
	Remediation bool `mapstructure:"actionable-remediation"`

	// CVSSThreshold drops vulnerabilities scoring below it; 0 keeps all
	CVSSThreshold float64 `mapstructure:"cvss-threshold"`

	// Exclude is a list of glob patterns skipped when Input is a directory
	Exclude []string `mapstructure:"exclude"`

	// Debug forces debug logging
	Debug bool `mapstructure:"debug"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is "console" or "json"
	Format string `mapstructure:"format"`

	// File enables an additional JSON log file, rotated by size
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max-size"`
	MaxBackups int    `mapstructure:"max-backups"`
	MaxAge     int    `mapstructure:"max-age"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Input:         "-",
		Output:        "",
		Template:      "",
		Format:        "html",
		Summary:       false,
		Remediation:   false,
		CVSSThreshold: 0,
		Exclude:       []string{},
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// SetupViper configures Viper to read from config file, env vars, and set defaults
func SetupViper(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("input", defaults.Input)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("template", defaults.Template)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("summary", defaults.Summary)
	v.SetDefault("actionable-remediation", defaults.Remediation)
	v.SetDefault("cvss-threshold", defaults.CVSSThreshold)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max-size", defaults.Log.MaxSize)
	v.SetDefault("log.max-backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max-age", defaults.Log.MaxAge)

	// Config file settings
	v.SetConfigName(".snyk-to-html")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	// Environment variable settings
	v.SetEnvPrefix("SNYK_TO_HTML")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Get returns a Config populated from the Viper instance's current state
func Get(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}
	return &cfg, nil
}
