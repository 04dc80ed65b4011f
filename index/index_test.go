package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnique(t *testing.T) {
	ix := NewUnique()

	// 1. Insert
	ix.Insert(1, 0)
	ix.Insert("a", 1)
	assert.Equal(t, 2, ix.Len())

	// 2. Lookup
	pos, ok := ix.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, uint32(0), pos)

	pos, ok = ix.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, uint32(1), pos)

	_, ok = ix.Lookup(2)
	assert.False(t, ok)
}

func TestMultiInsertionOrder(t *testing.T) {
	ix := NewMulti()

	ix.Insert("x", 2)
	ix.Insert("x", 0)
	ix.Insert("x", 7)
	ix.Insert("y", 1)

	positions, ok := ix.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 2, 7}, positions)

	_, ok = ix.Lookup("z")
	assert.False(t, ok)

	assert.Equal(t, 2, ix.Len())
}

func TestMultiPostings(t *testing.T) {
	ix := NewMulti()
	ix.Insert(42, 3)
	ix.Insert(42, 1)

	var got []uint32
	for pos := range ix.Postings(42) {
		got = append(got, pos)
	}
	assert.Equal(t, []uint32{1, 3}, got)

	for range ix.Postings("missing") {
		t.Fatal("unexpected posting for missing key")
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "None", KindNone.String())
	assert.Equal(t, "Unique", KindUnique.String())
	assert.Equal(t, "Multi", KindMulti.String())
}
