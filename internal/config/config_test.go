package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, 16, cfg.Storage.PageRangeSize)
	require.Equal(t, 75, cfg.Index.BTreeOrder)

	opts := cfg.TableOptions()
	require.Equal(t, cfg.Storage.PageRangeSize, opts.PageRangeSize)
	require.Equal(t, cfg.Index.BTreeOrder, opts.BTreeOrder)
	require.Equal(t, cfg.Index.StagingThreshold, opts.StagingThreshold)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	yaml := []byte(`
storage:
  page_range_size: 8
  page_capacity: 256
  merge_threshold: 32
  bufferpool_capacity: 64
index:
  btree_order: 32
  staging_threshold: 1000
  batch_insert_size: 100
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Storage.PageRangeSize)
	require.Equal(t, 256, cfg.Storage.PageCapacity)
	require.Equal(t, 32, cfg.Storage.MergeThreshold)
	require.Equal(t, 64, cfg.Storage.BufferPoolCapacity)
	require.Equal(t, 32, cfg.Index.BTreeOrder)
	require.Equal(t, 1000, cfg.Index.StagingThreshold)
	require.Equal(t, 100, cfg.Index.BatchInsertSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
