// Package storage implements the fixed-capacity append-only Page/PageRange
// storage model (spec.md §3/§4.1) plus the supporting path layout, page
// directory, and the in-memory PageStore that backs the buffer pool.
//
// On-disk page serialization is explicitly out of scope (spec.md §1):
// Page holds live record.Record values rather than an encoded byte
// buffer, and PageStore is an in-memory stand-in for the external
// buffer-pool contract described in spec.md §6.
package storage

import (
	"errors"

	"github.com/tuannm99/lstore/internal/record"
)

// DefaultPageCapacity is the number of whole records a single Page holds
// before it reports itself full.
const DefaultPageCapacity = 512

var ErrPageFull = errors.New("storage: page has no capacity")
var ErrOffsetOutOfRange = errors.New("storage: offset out of range")

// Page is a fixed-capacity append-only container of whole records,
// addressable by zero-based offset (spec.md §4.1). Pages do not enforce
// uniqueness; deduplication is the caller's responsibility.
type Page struct {
	capacity int
	records  []record.Record
}

func NewPage(capacity int) *Page {
	if capacity <= 0 {
		capacity = DefaultPageCapacity
	}
	return &Page{capacity: capacity, records: make([]record.Record, 0, capacity)}
}

// HasCapacity reports whether another record can be appended.
func (p *Page) HasCapacity() bool {
	return len(p.records) < p.capacity
}

// Write appends r at the next offset and returns that offset.
func (p *Page) Write(r record.Record) (int, error) {
	if !p.HasCapacity() {
		return 0, ErrPageFull
	}
	offset := len(p.records)
	p.records = append(p.records, r)
	return offset, nil
}

// Read returns the record at offset i.
func (p *Page) Read(i int) (record.Record, error) {
	if i < 0 || i >= len(p.records) {
		return record.Record{}, ErrOffsetOutOfRange
	}
	return p.records[i], nil
}

// Overwrite replaces the record at offset i in place. Per spec.md §3
// Lifecycles, the only in-place mutations this engine performs are a base
// record's indirection/schema_encoding fields after an update or delete
// (Table.Update/Table.Delete) and a base page's full consolidation during
// Table.Merge.
func (p *Page) Overwrite(i int, r record.Record) error {
	if i < 0 || i >= len(p.records) {
		return ErrOffsetOutOfRange
	}
	p.records[i] = r
	return nil
}

func (p *Page) NumRecords() int { return len(p.records) }
