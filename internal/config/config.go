package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"zipshipping/internal/logging"
)

type Config struct {
	DatabaseURL      string         `yaml:"database_url"`
	DatabaseMaxConns int32          `yaml:"database_max_conns"`
	RedisURL         string         `yaml:"redis_url"`
	Port             string         `yaml:"port"`
	RateProvider     string         `yaml:"rate_provider"`
	PatternCacheSize int            `yaml:"pattern_cache_size"`
	Logging          logging.Config `yaml:"logging"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		PatternCacheSize: 256,
		Logging:          logging.DefaultConfig(),
	}
}

// Load reads CONFIG_FILE (if set) and then applies environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads a YAML config file on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.DatabaseMaxConns = int32(n)
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("RATE_PROVIDER"); v != "" {
		cfg.RateProvider = v
	}
	if v := os.Getenv("PATTERN_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PatternCacheSize = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
