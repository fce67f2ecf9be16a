package config

import (
	"flag"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type Config struct {
	StorePath string `env:"PASSMAN_STORE"`
	Driver    string `env:"PASSMAN_DRIVER"`
	Lang      string `env:"PASSMAN_LANG"`
	LogLevel  string `env:"PASSMAN_LOG_LEVEL"`
	LogFile   string `env:"PASSMAN_LOG_FILE"`
	Version   bool   `env:"-"` // show version and exit (flag only)
}

// NewConfig reads .env, then the environment, then command-line flags.
// Flags default to the environment values, so a flag given explicitly wins.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	flag.StringVar(&cfg.StorePath, "store", cfg.StorePath, "path to the store file")
	flag.StringVar(&cfg.Driver, "driver", cfg.Driver, "store format: file|sqlite")
	flag.StringVar(&cfg.Lang, "lang", cfg.Lang, "interface language: en|fr")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.StorePath == "" {
		cfg.StorePath = "data.dat"
	}
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	if cfg.Driver == "" {
		cfg.Driver = DriverFile
	}
	cfg.Lang = strings.ToLower(strings.TrimSpace(cfg.Lang))
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}
