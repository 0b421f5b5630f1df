package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// Lane names the base/tail path component, matching spec.md §3/§6.
type Lane string

const (
	LaneBase Lane = "base"
	LaneTail Lane = "tail"
)

// BasePagePath renders "<table>/pagerange_<P>/base/page_<N>" (spec.md §3).
func BasePagePath(table string, pagerange, pageNum int) string {
	return pagePath(table, pagerange, LaneBase, pageNum)
}

// TailPagePath renders "<table>/pagerange_<P>/tail/page_<N>" (spec.md §3).
func TailPagePath(table string, pagerange, pageNum int) string {
	return pagePath(table, pagerange, LaneTail, pageNum)
}

func pagePath(table string, pagerange int, lane Lane, pageNum int) string {
	return fmt.Sprintf("%s/pagerange_%d/%s/page_%d", table, pagerange, lane, pageNum)
}

// RecordPath extends a page path with a record offset, used to build
// RECORD-granularity lock IDs (spec.md §4.5).
func RecordPath(pagePath string, offset int) string {
	return fmt.Sprintf("%s/%d", pagePath, offset)
}

// ParsePagerangeIndex recovers the pagerange index P from a page path by
// reading the digits between "pagerange_" and the next "/" (spec.md §6:
// "parsing is purely string-based"). Production code should prefer the index stored
// alongside the path in the PageDirectory (see the §9 design note); this
// exists to satisfy the "path parsing recoverability" invariant and for
// tests/tools that only have a bare path string.
func ParsePagerangeIndex(path string) (int, error) {
	const marker = "pagerange_"
	i := strings.Index(path, marker)
	if i < 0 {
		return 0, fmt.Errorf("storage: path %q has no %q segment", path, marker)
	}
	rest := path[i+len(marker):]
	end := strings.IndexByte(rest, '/')
	if end < 0 {
		return 0, fmt.Errorf("storage: path %q has malformed pagerange segment", path)
	}
	return strconv.Atoi(rest[:end])
}

// ParseLane recovers the base/tail component, the third path segment
// below the pagerange root (spec.md §6).
func ParseLane(path string) (Lane, error) {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "pagerange_") && i+1 < len(parts) {
			switch Lane(parts[i+1]) {
			case LaneBase:
				return LaneBase, nil
			case LaneTail:
				return LaneTail, nil
			}
		}
	}
	return "", fmt.Errorf("storage: path %q has no base/tail segment", path)
}
