// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"serviceplus/catalog"
	"serviceplus/services"
)

const envPrefix = "SERVICEPLUS"

const (
	BackendPocketBase = "pocketbase"
	BackendRedis      = "redis"
	BackendMemory     = "memory"
)

type Config struct {
	StoreBackend    string
	RedisAddr       string
	RedisPrefix     string
	RecentLimit     int
	PopularServices []string
	LogLevel        log.Level
}

// Load reads SERVICEPLUS_* variables, after loading .env files when present.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.WithError(err).Debug("config: no .env file loaded")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	v.SetDefault("STORE_BACKEND", BackendPocketBase)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PREFIX", "serviceplus:")
	v.SetDefault("RECENT_LIMIT", services.DefaultRecentLimit)
	v.SetDefault("POPULAR_SERVICES", strings.Join(catalog.DefaultPopularServices, ","))
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		StoreBackend:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPrefix:     v.GetString("REDIS_PREFIX"),
		RecentLimit:     v.GetInt("RECENT_LIMIT"),
		PopularServices: splitList(v.GetString("POPULAR_SERVICES")),
	}

	switch cfg.StoreBackend {
	case BackendPocketBase, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("config: unknown store backend %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("config: %s_REDIS_ADDR is required for the redis backend", envPrefix)
	}
	if cfg.RecentLimit < 1 {
		return nil, fmt.Errorf("config: %s_RECENT_LIMIT must be at least 1, got %d", envPrefix, cfg.RecentLimit)
	}

	level, err := log.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.LogLevel = level

	log.WithFields(log.Fields{
		"store":        cfg.StoreBackend,
		"recent_limit": cfg.RecentLimit,
	}).Info("config parsed")
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
