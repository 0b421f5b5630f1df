// Package lstore implements Table, the owner of pagerange layout, RID
// counters, the page directory, and the index for one table (spec.md
// §3/§4.4). Grounded on the teacher's internal/engine table-facing code
// (RID counters, page-location bookkeeping) but rebuilt against the
// two-layer base/tail indirection model spec.md §3/§4.4 describes,
// which the teacher's single-layer heap storage never had.
package lstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/tuannm99/lstore/internal/btree"
	"github.com/tuannm99/lstore/internal/bufferpool"
	"github.com/tuannm99/lstore/internal/index"
	"github.com/tuannm99/lstore/internal/record"
	"github.com/tuannm99/lstore/internal/storage"
)

var (
	// ErrDuplicateKey is returned by Insert when the primary key already exists.
	ErrDuplicateKey = errors.New("lstore: duplicate key")
	// ErrNoSuchKey is returned by Update/Delete/Select/Sum for a missing key
	// or an empty range.
	ErrNoSuchKey = errors.New("lstore: no such key")
)

// Options tunes a Table's layout constants; a zero Options uses spec.md's
// defaults.
type Options struct {
	PageRangeSize    int
	PageCapacity     int
	MergeThreshold   int
	BTreeOrder       int
	StagingThreshold int
	BatchInsertSize  int
}

func (o Options) withDefaults() Options {
	if o.PageRangeSize <= 0 {
		o.PageRangeSize = storage.DefaultPageRangeSize
	}
	if o.PageCapacity <= 0 {
		o.PageCapacity = storage.DefaultPageCapacity
	}
	if o.MergeThreshold <= 0 {
		o.MergeThreshold = 64
	}
	if o.BTreeOrder <= 0 {
		o.BTreeOrder = btree.DefaultOrder
	}
	if o.StagingThreshold <= 0 {
		o.StagingThreshold = index.DefaultStagingThreshold
	}
	if o.BatchInsertSize <= 0 {
		o.BatchInsertSize = index.DefaultBatchSize
	}
	return o
}

// Table is the per-table facade: RID allocation, pagerange layout, the
// page directory, and the column index, per spec.md §3's Table fields.
type Table struct {
	mu sync.Mutex

	Name   string
	Schema record.Schema
	opts   Options

	pool bufferpool.Manager
	dir  *storage.PageDirectory
	idx  *index.Index

	nextBaseSeq uint64
	nextTailSeq uint64

	pageRanges []*storage.PageRange
}

// New creates an empty table named name over schema, using pool for page
// I/O. schema.Cols[0] must be the primary key column.
func New(name string, schema record.Schema, pool bufferpool.Manager, opts Options) *Table {
	opts = opts.withDefaults()
	idx := index.New(schema.NumCols(), opts.BTreeOrder)
	idx.SetThresholds(opts.StagingThreshold, opts.BatchInsertSize)
	return &Table{
		Name:   name,
		Schema: schema,
		opts:   opts,
		pool:   pool,
		dir:    storage.NewPageDirectory(),
		idx:    idx,
	}
}

func (t *Table) allocBaseRID() record.RID {
	rid := record.NewRID(record.LaneBase, t.nextBaseSeq)
	t.nextBaseSeq++
	return rid
}

func (t *Table) allocTailRID() record.RID {
	rid := record.NewRID(record.LaneTail, t.nextTailSeq)
	t.nextTailSeq++
	return rid
}

// currentPageRangeLocked returns the table's last pagerange, allocating
// the bookkeeping struct for the first one if the table has none yet.
// Page 0's frames are minted lazily by ensureBasePageLocked/
// ensureTailPageLocked on first access. Caller holds t.mu.
func (t *Table) currentPageRangeLocked() *storage.PageRange {
	if len(t.pageRanges) > 0 {
		return t.pageRanges[len(t.pageRanges)-1]
	}
	pr := storage.NewPageRange(0)
	t.pageRanges = append(t.pageRanges, pr)
	return pr
}

// newPageRangeLocked opens the next pagerange (§4.1: "a new pagerange
// directory is created with one empty tail page and the base counter
// starts over"). Caller holds t.mu.
func (t *Table) newPageRangeLocked() *storage.PageRange {
	pr := storage.NewPageRange(len(t.pageRanges))
	t.pageRanges = append(t.pageRanges, pr)
	return pr
}

// fetchOrMintPage returns path's page, minting a fresh one via AddFrame
// if it has never been written (ErrPageNotFound). Either branch leaves
// the page pinned exactly once.
func (t *Table) fetchOrMintPage(path string) (*storage.Page, error) {
	page, err := t.pool.GetPage(path)
	if errors.Is(err, storage.ErrPageNotFound) {
		page = storage.NewPage(t.opts.PageCapacity)
		if err := t.pool.AddFrame(path, page); err != nil {
			return nil, err
		}
		return page, nil
	}
	return page, err
}

// ensureBasePageLocked returns the path+page a new base record can be
// written into, minting a fresh base page or pagerange on overflow
// (spec.md §4.1's lazy-allocation rule). Caller holds t.mu.
func (t *Table) ensureBasePageLocked() (path string, page *storage.Page, pr *storage.PageRange, err error) {
	pr = t.currentPageRangeLocked()

	path = pr.BasePagePath(t.Name)
	page, err = t.fetchOrMintPage(path)
	if err != nil {
		return "", nil, nil, err
	}

	if page.HasCapacity() {
		return path, page, pr, nil
	}
	_ = t.pool.UnpinPage(path)

	if pr.HasBaseRoom(t.opts.PageRangeSize) {
		pr.AdvanceBasePage()
	} else {
		pr = t.newPageRangeLocked()
	}
	path = pr.BasePagePath(t.Name)
	page, err = t.fetchOrMintPage(path)
	if err != nil {
		return "", nil, nil, err
	}
	return path, page, pr, nil
}

// ensureTailPageLocked returns the path+page a new tail record targeting
// pr can be written into, minting a fresh tail page on overflow. Caller
// holds t.mu.
func (t *Table) ensureTailPageLocked(pr *storage.PageRange) (path string, page *storage.Page, err error) {
	path = pr.TailPagePath(t.Name)
	page, err = t.fetchOrMintPage(path)
	if err != nil {
		return "", nil, err
	}
	if page.HasCapacity() {
		return path, page, nil
	}
	_ = t.pool.UnpinPage(path)

	pr.AdvanceTailPage()
	path = pr.TailPagePath(t.Name)
	page, err = t.fetchOrMintPage(path)
	if err != nil {
		return "", nil, err
	}
	return path, page, nil
}

// fetchRecord resolves rid to its stored Record via the page directory
// and buffer pool.
func (t *Table) fetchRecord(rid record.RID) (record.Record, error) {
	entry, ok := t.dir.Get(rid)
	if !ok {
		return record.Record{}, fmt.Errorf("lstore: %w: rid %s has no directory entry", ErrNoSuchKey, rid)
	}
	page, err := t.pool.GetPage(entry.Path)
	if err != nil {
		return record.Record{}, err
	}
	defer t.pool.UnpinPage(entry.Path)
	return page.Read(entry.Offset)
}

// resolveNewest follows base.Indirection at most once (it always points
// to the newest tail, or self-points when no update has happened yet —
// spec.md §3).
func (t *Table) resolveNewest(base record.Record) (record.Record, error) {
	if base.Indirection == base.RID {
		return base, nil
	}
	return t.fetchRecord(base.Indirection)
}

// Insert implements spec.md §4.4 Insert.
func (t *Table) Insert(cols []record.Value) (record.RID, error) {
	if len(cols) == 0 || cols[0].Null {
		return record.RID{}, fmt.Errorf("lstore: insert requires a non-null primary key")
	}
	pk := cols[0].I

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.idx.Exists(0, pk) {
		return record.RID{}, fmt.Errorf("%w: pk %d", ErrDuplicateKey, pk)
	}

	rid := t.allocBaseRID()
	rec := record.Record{
		RID:         rid,
		BaseRID:     rid,
		Indirection: rid,
		StartTime:   time.Now().UnixNano(),
		Columns:     append([]record.Value(nil), cols...),
	}

	t.idx.AddRecord(rec)

	path, page, pr, err := t.ensureBasePageLocked()
	if err != nil {
		return record.RID{}, err
	}
	offset, err := page.Write(rec)
	if err != nil {
		return record.RID{}, err
	}
	_ = t.pool.MarkDirty(path)
	_ = t.pool.UnpinPage(path)

	t.dir.Set(rid, storage.DirEntry{Path: path, Offset: offset, Pagerange: pr.Index})
	return rid, nil
}

// Update implements spec.md §4.4 Update, synthesizing an "original copy"
// tail on a record's first update (step 2).
func (t *Table) Update(pk int64, cols []record.Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateLocked(pk, cols)
}

func (t *Table) updateLocked(pk int64, cols []record.Value) error {
	baseRID, ok := t.idx.Locate(0, pk)
	if !ok {
		return fmt.Errorf("%w: pk %d", ErrNoSuchKey, pk)
	}
	baseEntry, ok := t.dir.Get(baseRID)
	if !ok {
		return fmt.Errorf("%w: pk %d missing directory entry", ErrNoSuchKey, pk)
	}
	basePage, err := t.pool.GetPage(baseEntry.Path)
	if err != nil {
		return err
	}
	base, err := basePage.Read(baseEntry.Offset)
	if err != nil {
		t.pool.UnpinPage(baseEntry.Path)
		return err
	}

	pr := t.pageRanges[baseEntry.Pagerange]

	var latest record.Record
	if base.Indirection == base.RID {
		// First update ever: pin the pre-update state as the chain root.
		var origEnc uint64
		for i := range cols {
			if !cols[i].Null {
				origEnc = record.SetSchemaBit(origEnc, i)
			}
		}
		origTail := record.Record{
			RID:            t.allocTailRID(),
			BaseRID:        base.RID,
			Indirection:    base.RID, // chain root sentinel
			StartTime:      time.Now().UnixNano(),
			SchemaEncoding: origEnc,
			Columns:        append([]record.Value(nil), base.Columns...),
		}
		if err := t.appendTailLocked(pr, origTail); err != nil {
			t.pool.UnpinPage(baseEntry.Path)
			return err
		}
		latest = origTail
	} else {
		latest, err = t.fetchRecord(base.Indirection)
		if err != nil {
			t.pool.UnpinPage(baseEntry.Path)
			return err
		}
	}

	merged := make([]record.Value, len(latest.Columns))
	mergedEnc := latest.SchemaEncoding
	for i := range merged {
		if i < len(cols) && !cols[i].Null {
			merged[i] = cols[i]
			mergedEnc = record.SetSchemaBit(mergedEnc, i)
		} else {
			merged[i] = latest.Columns[i]
		}
	}
	newTail := record.Record{
		RID:            t.allocTailRID(),
		BaseRID:        base.RID,
		Indirection:    latest.RID,
		StartTime:      time.Now().UnixNano(),
		SchemaEncoding: mergedEnc,
		Columns:        merged,
	}
	if err := t.appendTailLocked(pr, newTail); err != nil {
		t.pool.UnpinPage(baseEntry.Path)
		return err
	}

	base.Indirection = newTail.RID
	base.SchemaEncoding = newTail.SchemaEncoding
	if err := basePage.Overwrite(baseEntry.Offset, base); err != nil {
		t.pool.UnpinPage(baseEntry.Path)
		return err
	}
	_ = t.pool.MarkDirty(baseEntry.Path)
	_ = t.pool.UnpinPage(baseEntry.Path)

	pr.UnmergedUpdates++
	if pr.UnmergedUpdates >= t.opts.MergeThreshold {
		if err := t.mergeLocked(pr.Index); err != nil {
			slog.Warn("lstore: merge failed", "table", t.Name, "pagerange", pr.Index, "err", err)
		}
	}
	return nil
}

// appendTailLocked writes tail into pr's current tail page and registers
// it in the page directory. Caller holds t.mu.
func (t *Table) appendTailLocked(pr *storage.PageRange, tail record.Record) error {
	path, page, err := t.ensureTailPageLocked(pr)
	if err != nil {
		return err
	}
	offset, err := page.Write(tail)
	if err != nil {
		return err
	}
	_ = t.pool.MarkDirty(path)
	_ = t.pool.UnpinPage(path)
	t.dir.Set(tail.RID, storage.DirEntry{Path: path, Offset: offset, Pagerange: pr.Index})
	return nil
}

// Delete implements spec.md §4.4 Delete: identical to Update except the
// tail is an all-null, zero-schema-encoding tombstone.
func (t *Table) Delete(pk int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols := make([]record.Value, t.Schema.NumCols())
	for i := range cols {
		cols[i] = record.NullValue
	}
	return t.deleteLocked(pk, cols)
}

// deleteLocked mirrors updateLocked but forces a tombstone: all columns
// null, schema_encoding reset to zero regardless of the prior tail's
// encoding (spec.md §4.4: "no schema merging is needed").
func (t *Table) deleteLocked(pk int64, nullCols []record.Value) error {
	baseRID, ok := t.idx.Locate(0, pk)
	if !ok {
		return fmt.Errorf("%w: pk %d", ErrNoSuchKey, pk)
	}
	baseEntry, ok := t.dir.Get(baseRID)
	if !ok {
		return fmt.Errorf("%w: pk %d missing directory entry", ErrNoSuchKey, pk)
	}
	basePage, err := t.pool.GetPage(baseEntry.Path)
	if err != nil {
		return err
	}
	base, err := basePage.Read(baseEntry.Offset)
	if err != nil {
		t.pool.UnpinPage(baseEntry.Path)
		return err
	}
	pr := t.pageRanges[baseEntry.Pagerange]

	var latestRID record.RID
	if base.Indirection == base.RID {
		origTail := record.Record{
			RID:         t.allocTailRID(),
			BaseRID:     base.RID,
			Indirection: base.RID,
			StartTime:   time.Now().UnixNano(),
			Columns:     append([]record.Value(nil), base.Columns...),
		}
		if err := t.appendTailLocked(pr, origTail); err != nil {
			t.pool.UnpinPage(baseEntry.Path)
			return err
		}
		latestRID = origTail.RID
	} else {
		latestRID = base.Indirection
	}

	tomb := record.Record{
		RID:         t.allocTailRID(),
		BaseRID:     base.RID,
		Indirection: latestRID,
		StartTime:   time.Now().UnixNano(),
		Columns:     nullCols,
	}
	if err := t.appendTailLocked(pr, tomb); err != nil {
		t.pool.UnpinPage(baseEntry.Path)
		return err
	}

	base.Indirection = tomb.RID
	base.SchemaEncoding = 0
	if err := basePage.Overwrite(baseEntry.Offset, base); err != nil {
		t.pool.UnpinPage(baseEntry.Path)
		return err
	}
	_ = t.pool.MarkDirty(baseEntry.Path)
	_ = t.pool.UnpinPage(baseEntry.Path)

	pr.UnmergedUpdates++
	if pr.UnmergedUpdates >= t.opts.MergeThreshold {
		if err := t.mergeLocked(pr.Index); err != nil {
			slog.Warn("lstore: merge failed", "table", t.Name, "pagerange", pr.Index, "err", err)
		}
	}
	return nil
}

// project zeroes out every column whose mask entry is false, matching
// the select/select_version "projection" argument (spec.md §4.4).
func project(r record.Record, mask []bool) record.Record {
	if mask == nil {
		return r
	}
	out := r
	out.Columns = make([]record.Value, len(r.Columns))
	for i, v := range r.Columns {
		if i < len(mask) && mask[i] {
			out.Columns[i] = v
		} else {
			out.Columns[i] = record.NullValue
		}
	}
	return out
}

// Select implements spec.md §4.4 Select. Per Open Question #2, locate
// never returns more than one RID, so this always returns at most one
// record (never the comma-joined multi-RID form the source hints at).
func (t *Table) Select(pk int64, column int, mask []bool) ([]record.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rid, ok := t.idx.Locate(column, pk)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchKey, pk)
	}
	base, err := t.fetchRecord(rid)
	if err != nil {
		return nil, err
	}
	newest, err := t.resolveNewest(base)
	if err != nil {
		return nil, err
	}
	return []record.Record{project(newest, mask)}, nil
}

// SelectVersion implements spec.md §4.4 SelectVersion. The original loop
// (query.py) reads temp_record at the *start* of each of abs(v-2)
// iterations and advances temp_rid *after*, so it projects the record
// read on the *last* iteration — net abs(v-2)-1 indirection-follows from
// the base, not abs(v-2). v=0 (newest) nets 1 hop (base.indirection is
// already the newest tail); v=-1 nets 2 hops; v=-2 nets 3 hops — matching
// spec §8 S2 exactly. See DESIGN.md's Open Question #1 decision.
func (t *Table) SelectVersion(pk int64, column int, mask []bool, v int) ([]record.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rid, ok := t.idx.Locate(column, pk)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchKey, pk)
	}
	cur, err := t.fetchRecord(rid)
	if err != nil {
		return nil, err
	}

	cur = t.walkHops(cur, rid, versionHops(v))
	return []record.Record{project(cur, mask)}, nil
}

// versionHops converts a SelectVersion/SumVersion version number into the
// net number of indirection-follows from the base record: the read-then-
// advance loop in the original source performs abs(v-2) iterations but
// projects the record read on the last one, i.e. abs(v-2)-1 net hops.
func versionHops(v int) int {
	hops := v - 2
	if hops < 0 {
		hops = -hops
	}
	return hops - 1
}

// walkHops follows Indirection exactly n times starting from cur, whose
// base record is baseRID. It stops early the moment it would cross back
// from the chain-root tail (Indirection == baseRID) onto the base again
// — per spec.md §3's invariant, the chain root tail's Indirection points
// at the base RID rather than at itself, so without this check a hop
// count larger than the chain length would cycle back through the whole
// chain instead of staying pinned at the oldest version.
func (t *Table) walkHops(cur record.Record, baseRID record.RID, hops int) record.Record {
	for i := 0; i < hops; i++ {
		if cur.Indirection == cur.RID {
			break // never-updated base
		}
		if cur.Indirection == baseRID && cur.RID != baseRID {
			break // at the chain-root tail; don't loop back onto the base
		}
		next, err := t.fetchRecord(cur.Indirection)
		if err != nil {
			break
		}
		cur = next
	}
	return cur
}

// Sum implements spec.md §4.4 Sum over the inclusive PK range [lo, hi].
func (t *Table) Sum(lo, hi int64, col int) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rids := t.idx.LocateRange(0, lo, hi)
	if len(rids) == 0 {
		return 0, ErrNoSuchKey
	}
	var sum int64
	for _, rid := range rids {
		base, err := t.fetchRecord(rid)
		if err != nil {
			return 0, err
		}
		newest, err := t.resolveNewest(base)
		if err != nil {
			return 0, err
		}
		if col < len(newest.Columns) && !newest.Columns[col].Null {
			sum += newest.Columns[col].I
		}
	}
	return sum, nil
}

// SumVersion is Sum's versioned counterpart, walking versionHops(v) net
// hops per RID (see SelectVersion).
func (t *Table) SumVersion(lo, hi int64, col, v int) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rids := t.idx.LocateRange(0, lo, hi)
	if len(rids) == 0 {
		return 0, ErrNoSuchKey
	}
	hops := versionHops(v)
	var sum int64
	for _, rid := range rids {
		cur, err := t.fetchRecord(rid)
		if err != nil {
			return 0, err
		}
		cur = t.walkHops(cur, rid, hops)
		if col < len(cur.Columns) && !cur.Columns[col].Null {
			sum += cur.Columns[col].I
		}
	}
	return sum, nil
}

// Increment implements spec.md §4.4 Increment: read the newest value,
// add one, and dispatch to Update with every other column null.
func (t *Table) Increment(pk int64, col int) error {
	t.mu.Lock()
	rid, ok := t.idx.Locate(0, pk)
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoSuchKey, pk)
	}
	base, err := t.fetchRecord(rid)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	newest, err := t.resolveNewest(base)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	if col >= len(newest.Columns) || newest.Columns[col].Null {
		t.mu.Unlock()
		return fmt.Errorf("lstore: increment on null column %d", col)
	}

	cols := make([]record.Value, t.Schema.NumCols())
	for i := range cols {
		cols[i] = record.NullValue
	}
	cols[col] = record.IntValue(newest.Columns[col].I + 1)
	err = t.updateLocked(pk, cols)
	t.mu.Unlock()
	return err
}

// Merge implements the spec.md §4.4 Merge trigger contract. A full
// transaction-point-stamp cutoff is explicitly out of scope for the
// source ("implementation out of scope"); this simplifies to "each base
// record's columns reflect its current newest tail", preserving RIDs and
// page_directory mappings as required.
func (t *Table) Merge(pagerange int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mergeLocked(pagerange)
}

func (t *Table) mergeLocked(pagerange int) error {
	if pagerange < 0 || pagerange >= len(t.pageRanges) {
		return fmt.Errorf("lstore: no such pagerange %d", pagerange)
	}
	pr := t.pageRanges[pagerange]

	// Each base page's chain consolidation is independent of every other
	// base page's (distinct paths, distinct offsets), so the per-page
	// work fans out over a conc.WaitGroup instead of a sequential loop —
	// a pagerange with the full PAGE_RANGE_SIZE of base pages consolidates
	// them concurrently against the shared (mutex-guarded) buffer pool.
	var wg conc.WaitGroup
	for baseOffset := 0; baseOffset <= pr.CurrentBasePage; baseOffset++ {
		baseOffset := baseOffset
		wg.Go(func() {
			t.consolidateBasePage(pr, baseOffset)
		})
	}
	wg.Wait()

	pr.UnmergedUpdates = 0
	slog.Debug("lstore: merge complete", "table", t.Name, "pagerange", pagerange)
	return nil
}

func (t *Table) pageRangeBasePath(pr *storage.PageRange, baseOffset int) string {
	return storage.BasePagePath(t.Name, pr.Index, baseOffset)
}

// consolidateBasePage rewrites every base record on one base page to
// reflect its chain's newest tail, per Merge's contract. Run concurrently
// across base pages by mergeLocked; safe because distinct base pages
// never share a path or a page_directory offset.
func (t *Table) consolidateBasePage(pr *storage.PageRange, baseOffset int) {
	path := t.pageRangeBasePath(pr, baseOffset)
	page, err := t.pool.GetPage(path)
	if err != nil {
		return // page never written (shouldn't happen for offsets <= CurrentBasePage)
	}
	defer t.pool.UnpinPage(path)

	for i := 0; i < page.NumRecords(); i++ {
		base, err := page.Read(i)
		if err != nil {
			continue
		}
		if base.Indirection == base.RID {
			continue // never updated, nothing to consolidate
		}
		newest, err := t.resolveNewest(base)
		if err != nil {
			continue
		}
		consolidated := base
		consolidated.Columns = append([]record.Value(nil), newest.Columns...)
		if err := page.Overwrite(i, consolidated); err != nil {
			continue
		}
	}
	_ = t.pool.MarkDirty(path)
}

// LockIDs resolves the hierarchical TABLE -> PAGE_RANGE -> PAGE -> RECORD
// lock IDs (spec.md §4.5) a non-insert operation against (column, pk)
// must acquire, in that order. It is read-only: callers (Transaction.run)
// use it to plan lock acquisition before dispatching the operation
// itself.
func (t *Table) LockIDs(column int, pk int64) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rid, ok := t.idx.Locate(column, pk)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchKey, pk)
	}
	entry, ok := t.dir.Get(rid)
	if !ok {
		return nil, fmt.Errorf("%w: rid %s has no directory entry", ErrNoSuchKey, rid)
	}

	pagerangeID := fmt.Sprintf("%s/pagerange_%d", t.Name, entry.Pagerange)
	recordID := storage.RecordPath(entry.Path, entry.Offset)
	return []string{t.Name, pagerangeID, entry.Path, recordID}, nil
}
