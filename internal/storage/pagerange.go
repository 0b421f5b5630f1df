package storage

// DefaultPageRangeSize is the compile-time constant bounding how many
// base pages a single pagerange holds before a new pagerange is opened
// (spec.md §3, "typically 16").
const DefaultPageRangeSize = 16

// PageRange tracks the per-pagerange bookkeeping spec.md §3/§4.1
// describes: the current base/tail page index within the pagerange and
// the count of unmerged updates since the last merge. The actual Page
// contents live behind the buffer pool/PageStore, keyed by the paths
// this struct's indices produce (see BasePagePath/TailPagePath).
type PageRange struct {
	Index int

	// CurrentBasePage is the page_<N> index of the last (possibly still
	// open) base page in this pagerange.
	CurrentBasePage int
	// BasePageCount is how many base pages exist in this pagerange so far.
	BasePageCount int

	// CurrentTailPage is the page_<N> index of the newest tail page.
	CurrentTailPage int

	UnmergedUpdates int
}

// NewPageRange returns the bookkeeping for pagerange P with page_0 as its
// current base page (counted in BasePageCount) and its current tail page.
// It creates no Page itself; the pages behind those paths are minted by
// the caller on first access.
func NewPageRange(index int) *PageRange {
	return &PageRange{
		Index:           index,
		CurrentBasePage: 0,
		BasePageCount:   1,
		CurrentTailPage: 0,
	}
}

// BasePagePath returns the path of this pagerange's current base page.
func (pr *PageRange) BasePagePath(table string) string {
	return BasePagePath(table, pr.Index, pr.CurrentBasePage)
}

// TailPagePath returns the path of this pagerange's current tail page.
func (pr *PageRange) TailPagePath(table string) string {
	return TailPagePath(table, pr.Index, pr.CurrentTailPage)
}

// HasBaseRoom reports whether another base page can be minted in this
// pagerange without exceeding pageRangeSize.
func (pr *PageRange) HasBaseRoom(pageRangeSize int) bool {
	return pr.BasePageCount < pageRangeSize
}

// AdvanceBasePage mints the next base page path in the same pagerange.
func (pr *PageRange) AdvanceBasePage() {
	pr.CurrentBasePage++
	pr.BasePageCount++
}

// AdvanceTailPage mints the next tail page path in the same pagerange.
func (pr *PageRange) AdvanceTailPage() {
	pr.CurrentTailPage++
}
