package bufferpool

import "github.com/tuannm99/lstore/pkg/clockx"

// Replacer picks a victim frame to evict when the pool is full.
type Replacer interface {
	RecordAccess(frameID int)
	SetEvictable(frameID int, evictable bool)
	Evict() (frameID int, ok bool)
	Remove(frameID int)
	Size() int
}

// clockAdapter adapts pkg/clockx's CLOCK (second-chance) replacer to the
// frame-index space used by Pool. Grounded on the teacher's
// internal/bufferpool/replacer_clock_adapter.go, unchanged — CLOCK
// operates on opaque slot ids, so the path-keyed rewrite of Pool doesn't
// change anything here.
type clockAdapter struct {
	c *clockx.Clock
}

func newClockAdapter(capacity int) Replacer {
	return &clockAdapter{c: clockx.New(capacity)}
}

func (a *clockAdapter) RecordAccess(frameID int)            { a.c.Touch(frameID) }
func (a *clockAdapter) SetEvictable(frameID int, e bool)    { a.c.SetEvictable(frameID, e) }
func (a *clockAdapter) Evict() (int, bool)                  { return a.c.Evict() }
func (a *clockAdapter) Remove(frameID int)                  { a.c.Remove(frameID) }
func (a *clockAdapter) Size() int                           { return a.c.Size() }
