package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRIDRoundTrip(t *testing.T) {
	r := NewRID(LaneBase, 42)
	assert.Equal(t, "b42", r.String())

	parsed, err := ParseRID("b42")
	require.NoError(t, err)
	assert.Equal(t, r.Lane, parsed.Lane)
	assert.Equal(t, r.Seq, parsed.Seq)

	tail := NewRID(LaneTail, 7)
	assert.Equal(t, "t7", tail.String())
}

func TestRIDZero(t *testing.T) {
	var zero RID
	assert.True(t, zero.Zero())

	b0 := NewRID(LaneBase, 0)
	assert.False(t, b0.Zero(), "an explicitly allocated b0 must not read as unassigned")
}

func TestParseRIDInvalid(t *testing.T) {
	_, err := ParseRID("x1")
	assert.Error(t, err)

	_, err = ParseRID("b")
	assert.Error(t, err)
}

func TestRecordTombstone(t *testing.T) {
	live := Record{Columns: []Value{IntValue(1), IntValue(2)}}
	assert.False(t, live.IsTombstone())

	dead := Record{Columns: []Value{NullValue, NullValue}}
	assert.True(t, dead.IsTombstone())
}

func TestSchemaEncodingBits(t *testing.T) {
	var enc uint64
	assert.False(t, Record{SchemaEncoding: enc}.SchemaBit(1))

	enc = SetSchemaBit(enc, 1)
	r := Record{SchemaEncoding: enc}
	assert.True(t, r.SchemaBit(1))
	assert.False(t, r.SchemaBit(0))
}

func TestValueEqualAndLess(t *testing.T) {
	a := IntValue(5)
	b := IntValue(9)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Equal(IntValue(5)))
	assert.False(t, a.Equal(NullValue))
}
