package index

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Kind identifies the index shape on a column.
type Kind uint8

const (
	// KindNone means the column is not indexed.
	KindNone Kind = iota
	// KindUnique maps each value to at most one row position.
	KindUnique
	// KindMulti maps each value to an ordered set of row positions.
	KindMulti
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindUnique:
		return "Unique"
	case KindMulti:
		return "Multi"
	default:
		return "Unknown"
	}
}

// Unique is a 1:1 index mapping a column value to a row position.
type Unique struct {
	m map[any]uint32
}

// NewUnique creates a new empty unique index.
func NewUnique() *Unique {
	return &Unique{m: make(map[any]uint32)}
}

// Lookup returns the row position stored for key.
func (ix *Unique) Lookup(key any) (uint32, bool) {
	pos, ok := ix.m[key]
	return pos, ok
}

// Insert stores the row position for key.
// The caller guarantees key is not already present.
func (ix *Unique) Insert(key any, pos uint32) {
	ix.m[key] = pos
}

// Len returns the number of distinct keys.
func (ix *Unique) Len() int {
	return len(ix.m)
}

// Multi is a 1:many index mapping a column value to the positions of all
// rows carrying it. Positions are kept in a Roaring Bitmap; ascending
// iteration order equals insertion order.
type Multi struct {
	m map[any]*roaring.Bitmap
}

// NewMulti creates a new empty multi-value index.
func NewMulti() *Multi {
	return &Multi{m: make(map[any]*roaring.Bitmap)}
}

// Insert adds a row position to the posting list for key.
func (ix *Multi) Insert(key any, pos uint32) {
	rb, ok := ix.m[key]
	if !ok {
		rb = roaring.New()
		ix.m[key] = rb
	}
	rb.Add(pos)
}

// Lookup returns the row positions stored for key in ascending order.
func (ix *Multi) Lookup(key any) ([]uint32, bool) {
	rb, ok := ix.m[key]
	if !ok {
		return nil, false
	}
	return rb.ToArray(), true
}

// Postings returns an iterator over the row positions for key in
// ascending order.
func (ix *Multi) Postings(key any) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		rb, ok := ix.m[key]
		if !ok {
			return
		}
		it := rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Len returns the number of distinct keys.
func (ix *Multi) Len() int {
	return len(ix.m)
}
