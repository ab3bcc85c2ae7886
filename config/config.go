package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type CacheConfig struct {
	// Backend selects the cache store: memory | file | redis.
	Backend    string `yaml:"backend"`
	FilePath   string `yaml:"filePath"`
	RedisAddr  string `yaml:"redisAddr"`
	DefaultTTL string `yaml:"defaultTtl"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
}

// DefaultTTLDuration parses the configured TTL. An empty or invalid
// value yields zero, which the cache package maps to its own
// 5-minute default.
func (c CacheConfig) DefaultTTLDuration() time.Duration {
	if c.DefaultTTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.DefaultTTL)
	if err != nil {
		log.Printf("⚠️  invalid cache.defaultTtl %q, using default: %v", c.DefaultTTL, err)
		return 0
	}
	return d
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// Load reads the YAML config at path (optional: a missing file yields
// defaults) and then applies env overrides, so deployments can configure
// through either mechanism.
func Load(path string) (*Config, error) {
	c := &Config{
		Server: ServerConfig{Port: "8080"},
		Cache: CacheConfig{
			Backend:  "memory",
			FilePath: "hotel-booking.cache",
		},
	}

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(buf, c); err != nil {
				return nil, fmt.Errorf("parsing yaml: %w", err)
			}
		}
	}

	c.Server.Port = envOrDefault("PORT", c.Server.Port)
	c.Cache.Backend = strings.ToLower(envOrDefault("CACHE_BACKEND", c.Cache.Backend))
	c.Cache.FilePath = envOrDefault("CACHE_FILE", c.Cache.FilePath)
	c.Cache.RedisAddr = envOrDefault("REDIS_URL", c.Cache.RedisAddr)
	c.Cache.DefaultTTL = envOrDefault("CACHE_DEFAULT_TTL", c.Cache.DefaultTTL)

	return c, nil
}
