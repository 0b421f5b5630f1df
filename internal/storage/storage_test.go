package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/lstore/internal/record"
)

func TestPageWriteReadCapacity(t *testing.T) {
	p := NewPage(2)
	assert.True(t, p.HasCapacity())

	off0, err := p.Write(record.Record{RID: record.NewRID(record.LaneBase, 0)})
	require.NoError(t, err)
	assert.Equal(t, 0, off0)

	off1, err := p.Write(record.Record{RID: record.NewRID(record.LaneBase, 1)})
	require.NoError(t, err)
	assert.Equal(t, 1, off1)

	assert.False(t, p.HasCapacity())
	_, err = p.Write(record.Record{})
	assert.ErrorIs(t, err, ErrPageFull)

	got, err := p.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.RID.Seq)

	_, err = p.Read(5)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	assert.Equal(t, 2, p.NumRecords())
}

func TestPagePathRoundTrip(t *testing.T) {
	path := BasePagePath("grades", 3, 7)
	assert.Equal(t, "grades/pagerange_3/base/page_7", path)

	pr, err := ParsePagerangeIndex(path)
	require.NoError(t, err)
	assert.Equal(t, 3, pr)

	lane, err := ParseLane(path)
	require.NoError(t, err)
	assert.Equal(t, LaneBase, lane)

	tailPath := TailPagePath("grades", 3, 0)
	lane, err = ParseLane(tailPath)
	require.NoError(t, err)
	assert.Equal(t, LaneTail, lane)
}

func TestPageDirectory(t *testing.T) {
	d := NewPageDirectory()
	rid := record.NewRID(record.LaneBase, 1)

	_, ok := d.Get(rid)
	assert.False(t, ok)

	d.Set(rid, DirEntry{Path: "t/pagerange_0/base/page_0", Offset: 0, Pagerange: 0})
	e, ok := d.Get(rid)
	require.True(t, ok)
	assert.Equal(t, 0, e.Offset)
	assert.Equal(t, 1, d.Len())

	d.Delete(rid)
	assert.Equal(t, 0, d.Len())
}

func TestMemStoreLoadSave(t *testing.T) {
	ms := NewMemStore()
	_, err := ms.LoadPage("missing")
	assert.ErrorIs(t, err, ErrPageNotFound)

	p := NewPage(4)
	require.NoError(t, ms.SavePage("x", p))

	got, err := ms.LoadPage("x")
	require.NoError(t, err)
	assert.Same(t, p, got)
}

func TestPageRangeAdvance(t *testing.T) {
	pr := NewPageRange(0)
	assert.Equal(t, "tbl/pagerange_0/base/page_0", pr.BasePagePath("tbl"))
	assert.True(t, pr.HasBaseRoom(DefaultPageRangeSize))

	pr.AdvanceBasePage()
	assert.Equal(t, "tbl/pagerange_0/base/page_1", pr.BasePagePath("tbl"))
	assert.Equal(t, 2, pr.BasePageCount)

	pr.AdvanceTailPage()
	assert.Equal(t, "tbl/pagerange_0/tail/page_1", pr.TailPagePath("tbl"))
}
