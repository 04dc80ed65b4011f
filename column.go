package recgo

import "fmt"

// Column identifies one column of one table.
//
// Columns are handles created at declaration time; identity is the pair
// (table, name), so two tables may both declare "id" without the handles
// ever comparing equal.
type Column struct {
	t      *Table
	name   string
	pos    int
	unique bool
}

// Table returns the owning table.
func (c *Column) Table() *Table {
	return c.t
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// IsUnique reports whether the column is among its table's declared
// unique columns.
func (c *Column) IsUnique() bool {
	return c.unique
}

// Get returns the record's value at this column.
//
// It fails with *ErrColumnNotFound if the record belongs to a table that
// does not declare this column.
func (c *Column) Get(rec Record) (any, error) {
	if rec.t != c.t {
		table := "<nil>"
		if rec.t != nil {
			table = rec.t.name
		}
		return nil, &ErrColumnNotFound{Table: table, Column: c.name}
	}
	return c.t.rows[rec.pos][c.pos], nil
}

// String returns "Table.column".
func (c *Column) String() string {
	return fmt.Sprintf("%s.%s", c.t.name, c.name)
}

// Slot is one input slot of a bulk-loader specification: either a single
// *Column or a *ColumnGroup feeding several columns at once.
type Slot interface {
	slotColumns() []*Column
}

func (c *Column) slotColumns() []*Column {
	return []*Column{c}
}

// ColumnGroup is a set of columns sharing one bulk-loader input slot.
//
// Groups are how wide denormalized rows carry a value into several
// tables simultaneously, e.g. a join key present in both sides.
type ColumnGroup struct {
	cols []*Column
}

// Group combines columns into a ColumnGroup. Duplicate handles are kept
// once; nested groups can be merged with Union.
func Group(cols ...*Column) *ColumnGroup {
	g := &ColumnGroup{}
	return g.With(cols...)
}

// With returns a new group extended by the given columns (set union).
func (g *ColumnGroup) With(cols ...*Column) *ColumnGroup {
	out := &ColumnGroup{cols: append([]*Column(nil), g.cols...)}
	for _, c := range cols {
		if c == nil {
			continue
		}
		if !out.contains(c) {
			out.cols = append(out.cols, c)
		}
	}
	return out
}

// Union returns a new group containing the columns of both groups.
func (g *ColumnGroup) Union(other *ColumnGroup) *ColumnGroup {
	if other == nil {
		return g.With()
	}
	return g.With(other.cols...)
}

// Columns returns the columns in the group.
func (g *ColumnGroup) Columns() []*Column {
	return append([]*Column(nil), g.cols...)
}

func (g *ColumnGroup) contains(c *Column) bool {
	for _, have := range g.cols {
		if have == c {
			return true
		}
	}
	return false
}

func (g *ColumnGroup) slotColumns() []*Column {
	return g.cols
}
