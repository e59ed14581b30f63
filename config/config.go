// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads and validates the engine configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that reads from TOML strings such as "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// StorageConfig locates the term library.
type StorageConfig struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string `toml:"path"`

	// InMemory keeps the library in memory only; nothing survives Close.
	InMemory bool `toml:"in_memory"`
}

// SuggestConfig tunes suggestion ranking.
type SuggestConfig struct {
	// MaxResults is the default number of suggestions returned.
	// Default: 8
	MaxResults int `toml:"max_results"`

	// MinQueryLength is the shortest normalized query ranked, in characters.
	// Default: 2
	MinQueryLength int `toml:"min_query_length"`

	// SourceTimeout bounds each source call.
	// Default: 250ms
	SourceTimeout Duration `toml:"source_timeout"`

	// OverallTimeout bounds a whole ranking request.
	// Default: 750ms
	OverallTimeout Duration `toml:"overall_timeout"`

	// PoolSize is the number of workers calling sources.
	// Default: 64
	PoolSize int `toml:"pool_size"`

	// LearnedLimit is how many learned terms may be suggested per query.
	// Default: 5
	LearnedLimit int `toml:"learned_limit"`
}

// LearningConfig tunes search recording.
type LearningConfig struct {
	// SweepInterval runs the retention sweep every N recorded searches.
	// Default: 100
	SweepInterval uint64 `toml:"sweep_interval"`

	// RecordPoolSize is the number of workers recording searches asynchronously.
	// Default: 4
	RecordPoolSize int `toml:"record_pool_size"`
}

// RetentionConfig decides which learned terms are pruned.
type RetentionConfig struct {
	// MinFrequency is the frequency below which stale terms are removed.
	// Default: 2.0
	MinFrequency float64 `toml:"min_frequency"`

	// MaxAge is how long a low-frequency term may go unused.
	// Default: 720h
	MaxAge Duration `toml:"max_age"`
}

// IndexConfig locates the document filename index.
type IndexConfig struct {
	// Path is the bleve index directory. Empty keeps the index in memory.
	Path string `toml:"path"`

	// LookupLimit bounds the filenames fetched per completion lookup.
	// Default: 10
	LookupLimit int `toml:"lookup_limit"`
}

// Config holds the complete engine configuration.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Suggest   SuggestConfig   `toml:"suggest"`
	Learning  LearningConfig  `toml:"learning"`
	Retention RetentionConfig `toml:"retention"`
	Index     IndexConfig     `toml:"index"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithStoragePath sets the term library directory.
func WithStoragePath(path string) ConfigOption {
	return func(c *Config) {
		c.Storage.Path = path
	}
}

// WithInMemory keeps the term library in memory.
func WithInMemory(inMemory bool) ConfigOption {
	return func(c *Config) {
		c.Storage.InMemory = inMemory
	}
}

// WithIndexPath sets the document index directory.
func WithIndexPath(path string) ConfigOption {
	return func(c *Config) {
		c.Index.Path = path
	}
}

// WithMaxResults sets the default suggestion count.
func WithMaxResults(n int) ConfigOption {
	return func(c *Config) {
		c.Suggest.MaxResults = n
	}
}

// WithTimeouts sets the per-source and overall ranking timeouts.
func WithTimeouts(perSource, overall time.Duration) ConfigOption {
	return func(c *Config) {
		c.Suggest.SourceTimeout = Duration{perSource}
		c.Suggest.OverallTimeout = Duration{overall}
	}
}

// WithPoolSize sets the number of source workers.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.Suggest.PoolSize = size
	}
}

// WithSweepInterval sets how many recorded searches separate retention sweeps.
func WithSweepInterval(n uint64) ConfigOption {
	return func(c *Config) {
		c.Learning.SweepInterval = n
	}
}

// WithRetention sets the retention thresholds.
func WithRetention(minFrequency float64, maxAge time.Duration) ConfigOption {
	return func(c *Config) {
		c.Retention.MinFrequency = minFrequency
		c.Retention.MaxAge = Duration{maxAge}
	}
}

// WithLookupLimit sets how many filenames a completion lookup fetches.
func WithLookupLimit(n int) ConfigOption {
	return func(c *Config) {
		c.Index.LookupLimit = n
	}
}

// DefaultConfig returns a Config with the default tuning and an on-disk
// library under ./suggestor-data.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "suggestor-data",
		},
		Suggest: SuggestConfig{
			MaxResults:     8,
			MinQueryLength: 2,
			SourceTimeout:  Duration{250 * time.Millisecond},
			OverallTimeout: Duration{750 * time.Millisecond},
			PoolSize:       64,
			LearnedLimit:   5,
		},
		Learning: LearningConfig{
			SweepInterval:  100,
			RecordPoolSize: 4,
		},
		Retention: RetentionConfig{
			MinFrequency: 2.0,
			MaxAge:       Duration{30 * 24 * time.Hour},
		},
		Index: IndexConfig{
			LookupLimit: 10,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithStoragePath("/var/lib/suggestor"),
//	    WithTimeouts(100*time.Millisecond, 300*time.Millisecond),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads a TOML file over the defaults, applies opts, and validates the
// result. Unknown keys are rejected.
func Load(path string, opts ...ConfigOption) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrUnknownKeys is returned by Load when the file contains keys that do not
// map to any setting.
var ErrUnknownKeys = errors.New("config: unknown keys")

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return errors.New("config: storage path is required unless in_memory is set")
	}
	if c.Suggest.MaxResults < 1 {
		return errors.New("config: suggest.max_results must be positive")
	}
	if c.Suggest.MinQueryLength < 1 {
		return errors.New("config: suggest.min_query_length must be positive")
	}
	if c.Suggest.SourceTimeout.Duration <= 0 || c.Suggest.OverallTimeout.Duration <= 0 {
		return errors.New("config: suggest timeouts must be positive")
	}
	if c.Suggest.SourceTimeout.Duration > c.Suggest.OverallTimeout.Duration {
		return errors.New("config: suggest.source_timeout must not exceed overall_timeout")
	}
	if c.Suggest.PoolSize < 1 {
		return errors.New("config: suggest.pool_size must be positive")
	}
	if c.Suggest.LearnedLimit < 1 {
		return errors.New("config: suggest.learned_limit must be positive")
	}
	if c.Learning.SweepInterval < 1 {
		return errors.New("config: learning.sweep_interval must be positive")
	}
	if c.Learning.RecordPoolSize < 1 {
		return errors.New("config: learning.record_pool_size must be positive")
	}
	if c.Retention.MinFrequency <= 0 || c.Retention.MaxAge.Duration <= 0 {
		return errors.New("config: retention thresholds must be positive")
	}
	if c.Index.LookupLimit < 1 {
		return errors.New("config: index.lookup_limit must be positive")
	}
	return nil
}
