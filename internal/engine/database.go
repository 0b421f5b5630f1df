// Package engine wires storage, the buffer pool, the catalog, the lock
// manager, and per-name tables into one Database facade — spec.md §2's
// "Data flow" entry point.
//
// Grounded on the teacher's internal/engine/db.go (writeTableMeta /
// readTableMeta JSON persistence, the DatabaseOperation interface,
// NewDatabase(dataDir)), adapted from one fixed heap table with on-disk
// page counts to a named-table registry over the in-memory
// storage.PageStore this spec's bufferpool sits on (spec.md §1 puts the
// real page format out of scope — only the table *schema* metadata is
// JSON-persisted here, the record data never leaves memory).
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tuannm99/lstore/internal/bufferpool"
	"github.com/tuannm99/lstore/internal/catalog"
	locking "github.com/tuannm99/lstore/internal/lock"
	"github.com/tuannm99/lstore/internal/lstore"
	"github.com/tuannm99/lstore/internal/record"
	"github.com/tuannm99/lstore/internal/storage"
	"github.com/tuannm99/lstore/internal/txn"
)

// ErrTableNotOpen is returned by OpenTable for a name never created in
// this process.
var ErrTableNotOpen = errors.New("engine: table not open")

// DatabaseOperation is the facade's public contract, mirrored after the
// teacher's interface of the same name.
type DatabaseOperation interface {
	CreateTable(name string, schema record.Schema) (*lstore.Table, error)
	OpenTable(name string) (*lstore.Table, error)
	NewTransaction() *txn.Transaction
	Close() error
}

// TableMeta is the JSON-persisted schema record for one table — the
// teacher's PageCount/per-page bookkeeping is dropped since there is no
// on-disk page format here to count (spec.md §1).
type TableMeta struct {
	Name      string        `json:"name"`
	Schema    record.Schema `json:"schema"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

var _ DatabaseOperation = (*Database)(nil)

// Database owns every shared, cross-table resource a Transaction needs:
// the buffer pool, the lock manager, and the catalog. DataDir controls
// only table-metadata persistence; leaving it empty runs fully
// in-memory (the common case for tests).
type Database struct {
	DataDir string

	mu     sync.Mutex
	cat    *catalog.Catalog
	pool   bufferpool.Manager
	lm     *locking.LockManager
	tables map[string]*lstore.Table
	opts   lstore.Options
}

// NewDatabase creates a database handle without touching the filesystem
// (the teacher's NewDatabase does the same).
func NewDatabase(dataDir string, opts lstore.Options) *Database {
	return &Database{
		DataDir: dataDir,
		cat:     catalog.New(),
		pool:    bufferpool.NewPool(storage.NewMemStore(), bufferpool.DefaultCapacity),
		lm:      locking.NewLockManager(),
		tables:  make(map[string]*lstore.Table),
		opts:    opts,
	}
}

func (db *Database) tableDir() string {
	return filepath.Join(db.DataDir, "tables")
}

func (db *Database) tableMetaPath(name string) string {
	return filepath.Join(db.tableDir(), name+".meta.json")
}

// writeTableMeta overwrites the meta file for a given table. A no-op
// when DataDir is unset.
func (db *Database) writeTableMeta(meta *TableMeta) error {
	if db.DataDir == "" {
		return nil
	}
	if err := os.MkdirAll(db.tableDir(), 0o755); err != nil {
		return err
	}
	meta.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(db.tableMetaPath(meta.Name), data, 0o644)
}

// readTableMeta loads table metadata from its JSON file.
func (db *Database) readTableMeta(name string) (*TableMeta, error) {
	data, err := os.ReadFile(db.tableMetaPath(name))
	if err != nil {
		return nil, err
	}
	var meta TableMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// CreateTable registers name in the catalog, persists its schema meta
// (best-effort), and opens a fresh lstore.Table bound to the database's
// shared buffer pool.
func (db *Database) CreateTable(name string, schema record.Schema) (*lstore.Table, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.cat.Create(name, schema); err != nil {
		return nil, err
	}

	meta := &TableMeta{Name: name, Schema: schema, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.writeTableMeta(meta); err != nil {
		slog.Warn("engine: failed writing table meta", "table", name, "err", err)
	}

	tbl := lstore.New(name, schema, db.pool, db.opts)
	db.tables[name] = tbl
	return tbl, nil
}

// OpenTable returns the already-open table registered under name.
func (db *Database) OpenTable(name string) (*lstore.Table, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tbl, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotOpen, name)
	}
	return tbl, nil
}

// NewTransaction creates a Transaction bound to this database's shared
// lock manager (spec.md §9: never a package-level singleton).
func (db *Database) NewTransaction() *txn.Transaction {
	return txn.New(db.lm)
}

// Close flushes every dirty page in the buffer pool back to its store.
func (db *Database) Close() error {
	return db.pool.FlushAll()
}
