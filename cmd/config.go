// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/jcodagnone/rumbo/cache"
	"github.com/jcodagnone/rumbo/geo"
	"github.com/jcodagnone/rumbo/providers"
)

// Config is the service configuration, read from a YAML file with
// RUMBO_-prefixed environment overrides.
type Config struct {
	// Listen is the HTTP gateway's bind address.
	Listen string `mapstructure:"listen"`

	// UserAgent is sent on every provider request.
	UserAgent string `mapstructure:"user_agent"`

	// DefaultCacheTTL applies to caching providers without their own TTL.
	DefaultCacheTTL time.Duration `mapstructure:"default_cache_ttl"`

	// ProviderTimeout bounds each provider HTTP call.
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`

	Cache     CacheConfig      `mapstructure:"cache"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

// CacheConfig configures the two cache tiers.
type CacheConfig struct {
	// LocalSize is the local tier's maximum entry count.
	LocalSize int `mapstructure:"local_size"`

	// LocalCap caps how long any entry may live in the local tier.
	LocalCap time.Duration `mapstructure:"local_cap"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the shared backing tier. An empty Addr disables
// it; the cache then runs on the local tier alone.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// ProviderConfig describes one external provider.
type ProviderConfig struct {
	// Name identifies the provider in results and health snapshots.
	Name string `mapstructure:"name"`

	// Type selects the vendor client: google, here or tomtom.
	Type string `mapstructure:"type"`

	APIKey string `mapstructure:"api_key"`

	// AllowsCaching must stay false for vendors whose terms forbid
	// storing their responses.
	AllowsCaching bool `mapstructure:"allows_caching"`

	// CacheTTL is this vendor's preferred entry lifetime; zero falls
	// back to DefaultCacheTTL.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Priority orders fallback; lower tries first.
	Priority int `mapstructure:"priority"`
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RUMBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", "localhost:8080")
	v.SetDefault("user_agent", "rumbo/"+Version)
	v.SetDefault("default_cache_ttl", geo.DefaultCacheTTL)
	v.SetDefault("cache.local_size", 4096)
	v.SetDefault("cache.local_cap", cache.DefaultLocalCap)
	v.SetDefault("cache.redis.prefix", "rumbo")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(cfg.Providers) == 0 {
		return nil, errors.New("no providers configured")
	}

	return &cfg, nil
}

// buildOrchestrator wires the cache tiers, the vendor clients and the
// registry into an orchestrator, the way the configuration describes them.
func buildOrchestrator(cfg *Config) (*geo.Orchestrator, error) {
	local := cache.NewMemory(cfg.Cache.LocalSize, cfg.Cache.LocalCap)

	var backing cache.Store

	if cfg.Cache.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		backing = cache.NewRedis(client, cfg.Cache.Redis.Prefix)
	}

	tiered := cache.NewTiered(local, backing, cfg.Cache.LocalCap)

	opts := providers.Options{
		UserAgent:           cfg.UserAgent,
		Timeout:             cfg.ProviderTimeout,
		EnableHTTPTrace:     options.EnableHTTPTrace || options.EnableHTTPBodyTrace,
		EnableHTTPBodyTrace: options.EnableHTTPBodyTrace,
	}

	entries := make([]geo.Entry, 0, len(cfg.Providers))

	for _, pc := range cfg.Providers {
		desc := geo.Descriptor{
			Name:          pc.Name,
			AllowsCaching: pc.AllowsCaching,
			CacheTTL:      pc.CacheTTL,
		}

		provider, err := providers.New(pc.Type, desc, pc.APIKey, opts)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", pc.Name, err)
		}

		entries = append(entries, geo.Entry{Provider: provider, Priority: pc.Priority})
	}

	registry, err := geo.NewRegistry(entries)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	return geo.NewOrchestrator(tiered, registry, cfg.DefaultCacheTTL), nil
}
