package recgo

import (
	"fmt"
	"strings"

	"github.com/hupe1980/recgo/codec"
)

// Record is an immutable row of a table.
//
// A Record is a stable handle into its table's row arena; it stays valid
// across later inserts and is cheap to copy and compare. The zero Record
// is invalid.
type Record struct {
	t   *Table
	pos uint32
}

// Table returns the table owning the record, or nil for the zero Record.
func (r Record) Table() *Table {
	return r.t
}

// Valid reports whether the record refers to a row.
func (r Record) Valid() bool {
	return r.t != nil
}

// Values returns a copy of the record's values in declared column order.
func (r Record) Values() []any {
	if r.t == nil {
		return nil
	}
	row := r.t.rows[r.pos]
	out := make([]any, len(row))
	copy(out, row)
	return out
}

// Document returns the record as a column-name-to-value map.
func (r Record) Document() map[string]any {
	if r.t == nil {
		return nil
	}
	row := r.t.rows[r.pos]
	doc := make(map[string]any, len(row))
	for i, col := range r.t.columns {
		doc[col.name] = row[i]
	}
	return doc
}

// Equal reports elementwise value equality of two records.
//
// Records of different tables are never equal.
func (r Record) Equal(other Record) bool {
	if r.t != other.t {
		return false
	}
	if r.t == nil {
		return true
	}
	if r.pos == other.pos {
		return true
	}
	a, b := r.t.rows[r.pos], r.t.rows[other.pos]
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the record as Name(col=value, ...).
func (r Record) String() string {
	if r.t == nil {
		return "Record(invalid)"
	}
	var sb strings.Builder
	sb.WriteString(r.t.name)
	sb.WriteByte('(')
	row := r.t.rows[r.pos]
	for i, col := range r.t.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col.name)
		sb.WriteByte('=')
		switch v := row[i].(type) {
		case string:
			fmt.Fprintf(&sb, "%q", v)
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// MarshalJSON encodes the record as a column-name-to-value object using
// the default codec.
func (r Record) MarshalJSON() ([]byte, error) {
	return codec.Default.Marshal(r.Document())
}
