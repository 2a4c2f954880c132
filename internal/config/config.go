package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/samuu/verter"
	"github.com/samuu/verter/locale"
	"github.com/sirupsen/logrus"
)

// Config of the terminal front-end
type Config struct {
	// Lang is a BCP 47 tag or POSIX locale name, resolved from the environment when VERTER_LANG is empty
	Lang          string
	Currency      string
	LogLevel      string
	RetryNum      uint64
	RetryDuration time.Duration
}

type LookupFunc func(key string) (string, bool)

// Load reads an optional .env file and the process environment. Variables already set in the
// environment win over the file
func Load(path string) (*Config, error) {
	fileEnv := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		fileEnv = m
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := fileEnv[key]
		return v, ok
	}), nil
}

func FromLookup(lookup LookupFunc) *Config {
	cfg := &Config{}

	cfg.Lang = get(lookup, "VERTER_LANG", "")
	if cfg.Lang == "" {
		cfg.Lang = locale.FromEnv(lookup)
	}

	cfg.Currency = get(lookup, "VERTER_CURRENCY", "")
	cfg.LogLevel = get(lookup, "VERTER_LOG_LEVEL", DefaultLogLevel)
	cfg.RetryNum = getUint(lookup, "VERTER_RETRY_NUM", verter.DefaultRetryNum)
	cfg.RetryDuration = getDuration(lookup, "VERTER_RETRY_DURATION", verter.DefaultRetryDuration)

	return cfg
}

func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.RetryDuration <= 0 {
		return fmt.Errorf("VERTER_RETRY_DURATION must be positive, got %s", c.RetryDuration)
	}

	return nil
}

func get(lookup LookupFunc, key, defaultValue string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getUint(lookup LookupFunc, key string, defaultValue uint64) uint64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(lookup LookupFunc, key string, defaultValue time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
