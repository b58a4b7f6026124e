// Package config provides the kinship CLI configuration: types, defaults and
// the layered loader.
package config

import (
	"time"

	"github.com/matzehuels/kinship/pkg/cache"
	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/labels"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/pipeline"
	"github.com/matzehuels/kinship/pkg/store"
)

// Config holds all configuration for kinship.
type Config struct {
	Language  string          `mapstructure:"language"`
	Layout    layout.Config   `mapstructure:"layout"`
	Relations RelationsConfig `mapstructure:"relations"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Server    ServerConfig    `mapstructure:"server"`
}

// RelationsConfig lists extra relation keywords on top of the built-in
// table.
type RelationsConfig struct {
	Parent  []string `mapstructure:"parent"`
	Child   []string `mapstructure:"child"`
	Spouse  []string `mapstructure:"spouse"`
	Sibling []string `mapstructure:"sibling"`
	Exclude []string `mapstructure:"exclude"`
}

// CacheConfig selects and tunes the layout cache. A Redis address takes
// precedence over the file cache in Dir. Prefix namespaces every key, so
// several deployments can share one Redis database.
type CacheConfig struct {
	Disabled bool              `mapstructure:"disabled"`
	Dir      string            `mapstructure:"dir"`
	TTL      time.Duration     `mapstructure:"ttl"`
	Prefix   string            `mapstructure:"prefix"`
	Redis    cache.RedisConfig `mapstructure:"redis"`
}

// ServerConfig holds settings for kinship serve.
type ServerConfig struct {
	Addr            string            `mapstructure:"addr"`
	ShutdownTimeout time.Duration     `mapstructure:"shutdown_timeout"`
	Mongo           store.MongoConfig `mapstructure:"mongo"` // Empty URI keeps layouts in memory
	LogFile         string            `mapstructure:"log_file"`
	LogRotation     LogRotationConfig `mapstructure:"log_rotation"`
}

// LogRotationConfig holds lumberjack settings for the server log file.
type LogRotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dir, _ := cache.DefaultDir()
	return &Config{
		Language: "en",
		Layout:   layout.DefaultConfig(),
		Relations: RelationsConfig{
			Parent:  []string{},
			Child:   []string{},
			Spouse:  []string{},
			Sibling: []string{},
			Exclude: []string{},
		},
		Cache: CacheConfig{
			Dir: dir,
			TTL: cache.LayoutTTL,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 10 * time.Second,
			Mongo: store.MongoConfig{
				Database:   store.DefaultDatabase,
				Collection: store.DefaultCollection,
			},
			LogRotation: LogRotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
	}
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c *Config) Validate() error {
	if _, err := labels.Parse(c.Language); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "language")
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "server.shutdown_timeout must be positive")
	}
	return nil
}

// PipelineRelations converts the keyword lists for the pipeline.
func (r RelationsConfig) PipelineRelations() pipeline.Relations {
	types := make(map[string][]string, 4)
	for name, words := range map[string][]string{
		"parent":  r.Parent,
		"child":   r.Child,
		"spouse":  r.Spouse,
		"sibling": r.Sibling,
	} {
		if len(words) > 0 {
			types[name] = words
		}
	}
	rel := pipeline.Relations{Exclude: r.Exclude}
	if len(types) > 0 {
		rel.Types = types
	}
	if len(rel.Exclude) == 0 {
		rel.Exclude = nil
	}
	return rel
}
