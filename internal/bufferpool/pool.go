// Package bufferpool implements the external BufferPool contract spec.md
// §6 consumes: get_page(path) (pins), unpin_page(path), add_frame(path,
// page), mark_dirty(path). Grounded on the teacher's
// internal/bufferpool/pool.go (CLOCK replacement, pin-counted frames,
// slog instrumentation), rewritten from a uint32-pageID key space to the
// path-string key space this spec requires, and against the in-memory
// storage.PageStore rather than a real on-disk StorageManager (spec.md
// §1 puts the real page cache/disk format out of scope).
package bufferpool

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/tuannm99/lstore/internal/storage"
)

var (
	logPrefix = "bufferpool: "

	DefaultCapacity = 128

	// ErrNoFreeFrame is returned when no unpinned frame is available for
	// replacement.
	ErrNoFreeFrame = errors.New("bufferpool: no free frame available (all pinned)")

	// ErrPagePinned names the pinned-page error. Pool does not return it:
	// a pool whose frames are all pinned reports ErrNoFreeFrame.
	ErrPagePinned = errors.New("bufferpool: page is pinned")
)

// Manager is the path-keyed frame cache spec.md §6 specifies: pin/unpin,
// dirty marking, and fetch-by-path. Callers that mint a brand-new page
// (Table.Insert/Update allocating a fresh base/tail page) use AddFrame
// rather than GetPage, since the page does not exist in the backing
// store yet.
type Manager interface {
	GetPage(path string) (*storage.Page, error)
	UnpinPage(path string) error
	AddFrame(path string, page *storage.Page) error
	MarkDirty(path string) error
	FlushAll() error
}

// Frame holds one page and its pin/dirty metadata; CLOCK reference bits
// are kept by the Replacer, keyed by frame index.
type Frame struct {
	Path  string
	Page  *storage.Page
	Dirty bool
	Pin   int32
}

var _ Manager = (*Pool)(nil)

// Pool is a fixed-size, path-keyed buffer pool backed by a
// storage.PageStore, using CLOCK replacement when full.
type Pool struct {
	store storage.PageStore

	mu        sync.Mutex
	frames    []*Frame       // fixed-size slice, len == capacity, nil == free slot
	pageTable map[string]int // path -> index in frames
	capacity  int
	repl      Replacer
}

// NewPool creates a buffer pool of the given capacity over store.
func NewPool(store storage.PageStore, capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		store:     store,
		frames:    make([]*Frame, capacity),
		pageTable: make(map[string]int),
		capacity:  capacity,
		repl:      newClockAdapter(capacity),
	}
}

// GetPage returns the page at path, pinning it. If not cached, it is
// loaded from the backing PageStore, evicting a CLOCK victim if the pool
// is full.
func (p *Pool) GetPage(path string) (*storage.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if idx, ok := p.pageTable[path]; ok {
		f := p.frames[idx]
		f.Pin++
		p.repl.RecordAccess(idx)
		p.repl.SetEvictable(idx, false)
		return f.Page, nil
	}

	page, err := p.store.LoadPage(path)
	if err != nil {
		return nil, err
	}
	return p.installLocked(path, page)
}

// AddFrame inserts a freshly minted page directly into the pool, pinned
// once, without consulting the backing store (the page does not exist
// there yet).
func (p *Pool) AddFrame(path string, page *storage.Page) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.pageTable[path]; ok {
		return nil
	}
	_, err := p.installLocked(path, page)
	return err
}

// installLocked places page at path into a free or evicted frame slot.
// Caller must hold p.mu.
func (p *Pool) installLocked(path string, page *storage.Page) (*storage.Page, error) {
	freeIdx := -1
	for i, f := range p.frames {
		if f == nil {
			freeIdx = i
			break
		}
	}

	if freeIdx == -1 {
		victimIdx, ok := p.repl.Evict()
		if !ok {
			slog.Debug(logPrefix + "no evictable frame, pool exhausted")
			return nil, ErrNoFreeFrame
		}
		victim := p.frames[victimIdx]
		if victim.Dirty {
			if err := p.store.SavePage(victim.Path, victim.Page); err != nil {
				return nil, err
			}
		}
		delete(p.pageTable, victim.Path)
		freeIdx = victimIdx
	}

	f := &Frame{Path: path, Page: page, Pin: 1}
	p.frames[freeIdx] = f
	p.pageTable[path] = freeIdx
	p.repl.RecordAccess(freeIdx)
	p.repl.SetEvictable(freeIdx, false)
	return page, nil
}

// UnpinPage decreases the pin count for path; once it drops to zero the
// frame becomes eligible for CLOCK eviction.
func (p *Pool) UnpinPage(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.pageTable[path]
	if !ok {
		slog.Debug(logPrefix+"UnpinPage ignored, page not resident", "path", path)
		return nil
	}
	f := p.frames[idx]
	if f.Pin > 0 {
		f.Pin--
	}
	if f.Pin == 0 {
		p.repl.SetEvictable(idx, true)
	}
	return nil
}

// MarkDirty flags path's frame as needing a write-back before eviction.
func (p *Pool) MarkDirty(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.pageTable[path]
	if !ok {
		return nil
	}
	p.frames[idx].Dirty = true
	return nil
}

// FlushAll writes every dirty frame back to the backing PageStore.
func (p *Pool) FlushAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, f := range p.frames {
		if f == nil || !f.Dirty {
			continue
		}
		if err := p.store.SavePage(f.Path, f.Page); err != nil {
			return err
		}
		f.Dirty = false
	}
	return nil
}
