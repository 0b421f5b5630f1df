package storage

import (
	"sync"

	"github.com/tuannm99/lstore/internal/record"
)

// DirEntry is the page directory's value type: a path plus offset, with
// the pagerange index carried alongside per the §9 design note ("store
// the pagerange index alongside the path ... rather than re-parsing
// paths on every update").
type DirEntry struct {
	Path      string
	Offset    int
	Pagerange int
}

// PageDirectory maps RID -> (path, offset), the structure spec.md §3/§4.4
// calls out as invariant: "every RID present in page_directory resolves
// to a valid (path, offset) whose record has that RID." Grounded on the
// teacher's pkg/storage/page_directory.go (mutex-guarded map), simplified
// to an in-memory directory since on-disk persistence is out of scope.
type PageDirectory struct {
	mu      sync.RWMutex
	entries map[record.RID]DirEntry
}

func NewPageDirectory() *PageDirectory {
	return &PageDirectory{entries: make(map[record.RID]DirEntry)}
}

func (d *PageDirectory) Set(rid record.RID, e DirEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[rid] = e
}

func (d *PageDirectory) Get(rid record.RID) (DirEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[rid]
	return e, ok
}

func (d *PageDirectory) Delete(rid record.RID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, rid)
}

func (d *PageDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
