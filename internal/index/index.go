// Package index implements the per-column B+tree array augmented with a
// write-staging cache (spec.md §4.3): sorted/unsorted insert caches that
// amortize bulk-load cost, plus a primary-key fast path (primary_key_cache
// and a binary-insertion-maintained sorted_records list) that never
// touches the tree.
package index

import (
	"sort"
	"sync"

	"github.com/tuannm99/lstore/internal/btree"
	"github.com/tuannm99/lstore/internal/record"
)

// DefaultStagingThreshold and DefaultBatchSize follow spec.md §4.3's
// approximate figures ("≈50k" staged entries before a flush, "≈5000"
// per batch_insert call).
const (
	DefaultStagingThreshold = 50_000
	DefaultBatchSize        = 5_000
)

// entry is one staged (key, rid) pair.
type entry struct {
	key int64
	rid record.RID
}

// Index is maintained per-table, covering every user column. Column 0 is
// always the primary key (spec.md §3/§4.3).
type Index struct {
	mu sync.Mutex

	numCols          int
	stagingThreshold int
	batchSize        int

	trees         []*btree.Tree
	insertCache   [][]entry // sorted, per column
	unsortedCache [][]entry // append-only, per column
	maxKeys       []int64
	hasMaxKey     []bool

	primaryKeyCache map[int64]record.RID
	sortedRecords   []entry // ordered by key, column 0 only
}

// New creates an Index over numCols user columns, each backed by a
// btree.Tree of the given order.
func New(numCols, order int) *Index {
	ix := &Index{
		numCols:          numCols,
		stagingThreshold: DefaultStagingThreshold,
		batchSize:        DefaultBatchSize,
		trees:            make([]*btree.Tree, numCols),
		insertCache:      make([][]entry, numCols),
		unsortedCache:    make([][]entry, numCols),
		maxKeys:          make([]int64, numCols),
		hasMaxKey:        make([]bool, numCols),
		primaryKeyCache:  make(map[int64]record.RID),
	}
	for c := range ix.trees {
		ix.trees[c] = btree.New(order)
	}
	return ix
}

// SetThresholds overrides the staging threshold / batch size, primarily
// for tests that want to exercise a flush without 50k rows.
func (ix *Index) SetThresholds(stagingThreshold, batchSize int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.stagingThreshold = stagingThreshold
	ix.batchSize = batchSize
}

// AddRecord stages r under every non-null column. For the primary-key
// column it additionally updates primary_key_cache and binary-inserts
// into sorted_records synchronously, so locate/locate_range on column 0
// are always consistent without a flush.
func (ix *Index) AddRecord(r record.Record) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for c := 0; c < ix.numCols && c < len(r.Columns); c++ {
		v := r.Columns[c]
		if v.Null {
			continue
		}
		e := entry{key: v.I, rid: r.RID}
		ix.unsortedCache[c] = append(ix.unsortedCache[c], e)

		if c == 0 {
			ix.primaryKeyCache[v.I] = r.RID
			ix.insertSortedRecordLocked(e)
		}

		if len(ix.unsortedCache[c])+len(ix.insertCache[c]) > ix.stagingThreshold {
			ix.flushColumnLocked(c)
		}
	}
}

// insertSortedRecordLocked binary-inserts e into sortedRecords, keeping
// it ordered by key (caller holds ix.mu).
func (ix *Index) insertSortedRecordLocked(e entry) {
	i := sort.Search(len(ix.sortedRecords), func(i int) bool {
		return ix.sortedRecords[i].key >= e.key
	})
	ix.sortedRecords = append(ix.sortedRecords, entry{})
	copy(ix.sortedRecords[i+1:], ix.sortedRecords[i:])
	ix.sortedRecords[i] = e
}

// flushColumnLocked implements spec.md §4.3's three-step flush: merge the
// unsorted cache into the sorted one, batch_insert in slices with a
// per-key fallback on ErrUnorderedBatch, then record the new max key.
// Caller holds ix.mu.
func (ix *Index) flushColumnLocked(c int) {
	if len(ix.unsortedCache[c]) > 0 {
		sort.Slice(ix.unsortedCache[c], func(i, j int) bool {
			return ix.unsortedCache[c][i].key < ix.unsortedCache[c][j].key
		})
		ix.insertCache[c] = mergeSorted(ix.insertCache[c], ix.unsortedCache[c])
		ix.unsortedCache[c] = nil
	}

	batch := ix.insertCache[c]
	for start := 0; start < len(batch); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(batch) {
			end = len(batch)
		}
		slice := batch[start:end]

		pairs := make([]btree.Pair, len(slice))
		for i, e := range slice {
			pairs[i] = btree.Pair{Key: e.key, Value: e.rid.String()}
		}

		if err := ix.trees[c].BatchInsert(pairs); err != nil {
			// UnorderedBatch: late insertions interleaved with earlier
			// keys. Fall back to per-key insert for this batch only.
			for _, e := range slice {
				ix.trees[c].Put(e.key, e.rid.String())
			}
		}
	}

	if len(batch) > 0 {
		ix.maxKeys[c] = batch[len(batch)-1].key
		ix.hasMaxKey[c] = true
	}
	ix.insertCache[c] = nil
}

// mergeSorted two-pointer merges two already-sorted entry slices.
func mergeSorted(a, b []entry) []entry {
	out := make([]entry, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].key <= b[j].key {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Flush forces a flush of every column; exposed for bulk-load callers
// (spec.md §8 S7) that want deterministic PK lookups right after a load.
func (ix *Index) Flush() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for c := 0; c < ix.numCols; c++ {
		ix.flushColumnLocked(c)
	}
}

// Locate performs a point lookup. Column 0 hits go through
// primary_key_cache without a flush; other columns flush column c first.
//
// Per Open Question #2 (spec.md §9), locate never returns more than one
// RID — the comma-joined multi-RID secondary-index form described in the
// source is never produced here.
func (ix *Index) Locate(column int, key int64) (record.RID, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if column == 0 {
		if rid, ok := ix.primaryKeyCache[key]; ok {
			return rid, true
		}
		// A miss in primary_key_cache is reported as not found: every
		// AddRecord updates it (and sorted_records) synchronously, so
		// column 0 has no tree fallback.
		return record.RID{}, false
	}

	ix.flushColumnLocked(column)
	v, err := ix.trees[column].Get(key)
	if err != nil {
		return record.RID{}, false
	}
	rid, err := record.ParseRID(v)
	if err != nil {
		return record.RID{}, false
	}
	return rid, true
}

// LocateRange returns the RIDs for every key in [lo, hi] on the given
// column, in ascending key order. Column 0 binary-searches sorted_records
// and never flushes; other columns flush then leaf-walk the tree.
func (ix *Index) LocateRange(column int, lo, hi int64) []record.RID {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if column == 0 {
		lo_ := sort.Search(len(ix.sortedRecords), func(i int) bool {
			return ix.sortedRecords[i].key >= lo
		})
		var out []record.RID
		for i := lo_; i < len(ix.sortedRecords) && ix.sortedRecords[i].key <= hi; i++ {
			out = append(out, ix.sortedRecords[i].rid)
		}
		return out
	}

	ix.flushColumnLocked(column)
	pairs := ix.trees[column].RangeScan(lo, hi)
	out := make([]record.RID, 0, len(pairs))
	for _, p := range pairs {
		rid, err := record.ParseRID(p.Value)
		if err != nil {
			continue
		}
		out = append(out, rid)
	}
	return out
}

// Exists reports whether any record carries value in column, per
// spec.md §4.3's scan-then-maybe-flush recipe.
func (ix *Index) Exists(column int, key int64) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if column == 0 {
		if _, ok := ix.primaryKeyCache[key]; ok {
			return true
		}
	}

	if ix.scanStagingLocked(column, key) {
		return true
	}

	bothEmpty := len(ix.unsortedCache[column]) == 0 && len(ix.insertCache[column]) == 0
	if bothEmpty {
		return ix.trees[column].HasKey(key)
	}

	ix.flushColumnLocked(column)
	return ix.trees[column].HasKey(key)
}

func (ix *Index) scanStagingLocked(column int, key int64) bool {
	for _, e := range ix.unsortedCache[column] {
		if e.key == key {
			return true
		}
	}
	for _, e := range ix.insertCache[column] {
		if e.key == key {
			return true
		}
	}
	return false
}
