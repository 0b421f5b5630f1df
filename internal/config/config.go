// Package config loads engine tuning knobs from YAML via viper, the same
// way the teacher's internal/config.go does (viper.New, SetConfigFile,
// mapstructure tags), extended with this engine's own knobs in place of
// the teacher's storage-mode/server-port settings.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tuannm99/lstore/internal/btree"
	"github.com/tuannm99/lstore/internal/bufferpool"
	"github.com/tuannm99/lstore/internal/index"
	"github.com/tuannm99/lstore/internal/lstore"
	"github.com/tuannm99/lstore/internal/storage"
)

// EngineConfig mirrors the teacher's NovaSqlConfig shape: one struct,
// mapstructure-tagged, unmarshaled wholesale from a single YAML document.
type EngineConfig struct {
	Storage struct {
		PageRangeSize      int `mapstructure:"page_range_size"`
		PageCapacity       int `mapstructure:"page_capacity"`
		MergeThreshold     int `mapstructure:"merge_threshold"`
		BufferPoolCapacity int `mapstructure:"bufferpool_capacity"`
	} `mapstructure:"storage"`

	Index struct {
		BTreeOrder       int `mapstructure:"btree_order"`
		StagingThreshold int `mapstructure:"staging_threshold"`
		BatchInsertSize  int `mapstructure:"batch_insert_size"`
	} `mapstructure:"index"`
}

// LoadConfig reads path (a YAML file) into an EngineConfig, following the
// teacher's LoadConfig(path) signature and error-wrapping style.
func LoadConfig(path string) (*EngineConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Defaults returns an EngineConfig populated with this engine's built-in
// defaults (spec.md's "PAGE_RANGE_SIZE ... typically 16", B+tree "default
// 75", staging threshold "≈50k", batch size "≈5000"), used when no YAML
// file is supplied.
func Defaults() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.Storage.PageRangeSize = storage.DefaultPageRangeSize
	cfg.Storage.PageCapacity = storage.DefaultPageCapacity
	cfg.Storage.MergeThreshold = 64
	cfg.Storage.BufferPoolCapacity = bufferpool.DefaultCapacity
	cfg.Index.BTreeOrder = btree.DefaultOrder
	cfg.Index.StagingThreshold = index.DefaultStagingThreshold
	cfg.Index.BatchInsertSize = index.DefaultBatchSize
	return cfg
}

// TableOptions projects the storage/index knobs into lstore.Options.
func (c *EngineConfig) TableOptions() lstore.Options {
	return lstore.Options{
		PageRangeSize:    c.Storage.PageRangeSize,
		PageCapacity:     c.Storage.PageCapacity,
		MergeThreshold:   c.Storage.MergeThreshold,
		BTreeOrder:       c.Index.BTreeOrder,
		StagingThreshold: c.Index.StagingThreshold,
		BatchInsertSize:  c.Index.BatchInsertSize,
	}
}
