package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/lstore/internal/record"
)

func testSchema() record.Schema {
	return record.Schema{Cols: []record.Column{
		{Name: "pk", Type: record.ColInt64},
		{Name: "a", Type: record.ColInt64},
		{Name: "b", Type: record.ColInt64},
	}}
}

func TestCreateGetDrop(t *testing.T) {
	c := New()
	require.NoError(t, c.Create("orders", testSchema()))

	s, err := c.Get("orders")
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumCols())

	require.NoError(t, c.Drop("orders"))
	_, err = c.Get("orders")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCreateDuplicateFails(t *testing.T) {
	c := New()
	require.NoError(t, c.Create("orders", testSchema()))
	err := c.Create("orders", testSchema())
	assert.ErrorIs(t, err, ErrTableExists)
}

func TestNames(t *testing.T) {
	c := New()
	require.NoError(t, c.Create("orders", testSchema()))
	require.NoError(t, c.Create("users", testSchema()))
	assert.ElementsMatch(t, []string{"orders", "users"}, c.Names())
}
