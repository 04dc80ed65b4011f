package recgo

import (
	"fmt"
	"sort"

	"github.com/hupe1980/recgo/codec"
)

// Rows is a positional bulk loader: a flat specification of input slots
// over a wide tuple, routing each incoming row to every referenced
// table's Construct with the correct sub-tuple.
type Rows struct {
	width  int
	tables []tableSlots
	codec  codec.Codec
	logger *Logger
}

// tableSlots maps one referenced table's declared columns to input slot
// positions; -1 marks a declared column no slot feeds, which surfaces as
// a nil value and follows the incomplete-row rule.
type tableSlots struct {
	table *Table
	slots []int
}

// NewRows builds a positional bulk loader from slot specifications, each
// a *Column or a *ColumnGroup. Slot i of every appended row feeds the
// columns of spec i.
func NewRows(specs ...Slot) (*Rows, error) {
	return NewRowsWith(specs)
}

// NewRowsWith is NewRows with loader options.
func NewRowsWith(specs []Slot, opts ...LoaderOption) (*Rows, error) {
	opt := loaderOptions{
		codec:  codec.Default,
		logger: NoopLogger(),
	}
	for _, fn := range opts {
		fn(&opt)
	}
	return newRows(specs, opt)
}

func newRows(specs []Slot, opt loaderOptions) (*Rows, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("rows: at least one slot required")
	}

	colSlot := make(map[*Column]int)
	for i, spec := range specs {
		if spec == nil {
			return nil, fmt.Errorf("rows: slot %d is nil", i)
		}
		for _, col := range spec.slotColumns() {
			if prev, ok := colSlot[col]; ok && prev != i {
				return nil, fmt.Errorf("rows: column %s fed by slots %d and %d", col, prev, i)
			}
			colSlot[col] = i
		}
	}

	r := &Rows{width: len(specs), codec: opt.codec, logger: opt.logger}
	r.tables = planTables(colSlot)
	return r, nil
}

// planTables computes, per referenced table in name order, the input
// slot feeding each declared column.
func planTables(colSlot map[*Column]int) []tableSlots {
	seen := make(map[*Table]bool)
	var tables []*Table
	for col := range colSlot {
		if !seen[col.t] {
			seen[col.t] = true
			tables = append(tables, col.t)
		}
	}
	// Fixed deterministic order so fan-out is reproducible.
	sort.Slice(tables, func(i, j int) bool { return tables[i].name < tables[j].name })

	plan := make([]tableSlots, 0, len(tables))
	for _, t := range tables {
		slots := make([]int, len(t.columns))
		for i, col := range t.columns {
			if s, ok := colSlot[col]; ok {
				slots[i] = s
			} else {
				slots[i] = -1
			}
		}
		plan = append(plan, tableSlots{table: t, slots: slots})
	}
	return plan
}

// Append fans one wide row out into every referenced table.
//
// Tables are processed in name order. A constraint error stops the
// fan-out; tables processed before it keep their inserts.
func (r *Rows) Append(row []any) error {
	if len(row) != r.width {
		return fmt.Errorf("rows: got %d values for %d slots", len(row), r.width)
	}
	for _, ts := range r.tables {
		sub := make([]any, len(ts.slots))
		for i, s := range ts.slots {
			if s >= 0 {
				sub[i] = row[s]
			}
		}
		if _, _, err := ts.table.Construct(sub...); err != nil {
			return err
		}
	}
	return nil
}

// Extend appends each row in order.
//
// Extend is not atomic: a failure partway through leaves the rows before
// it committed.
func (r *Rows) Extend(rows [][]any) error {
	for i, row := range rows {
		if err := r.Append(row); err != nil {
			r.logger.LogBulkLoad(len(r.tables), i, err)
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	r.logger.LogBulkLoad(len(r.tables), len(rows), nil)
	return nil
}

// ExtendJSON decodes data as a JSON array of arrays with the loader's
// codec and appends each inner array as one wide row.
//
// JSON numbers decode as float64; key values must be used consistently
// across loaders for dedup and joins to line up.
func (r *Rows) ExtendJSON(data []byte) error {
	var rows [][]any
	if err := r.codec.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decode bulk input: %w", err)
	}
	return r.Extend(rows)
}

// DictRows is the named variant of Rows: input slots are keys of a wide
// mapping instead of tuple positions.
type DictRows struct {
	tables []tableKeys
	codec  codec.Codec
	logger *Logger
}

// tableKeys maps one referenced table's declared columns to input keys;
// an empty key marks a declared column no slot feeds.
type tableKeys struct {
	table *Table
	keys  []string
}

// NewDictRows builds a named bulk loader from keyed slot specifications.
// The value at key k of every appended document feeds the columns of
// specs[k].
func NewDictRows(specs map[string]Slot, opts ...LoaderOption) (*DictRows, error) {
	opt := loaderOptions{
		codec:  codec.Default,
		logger: NoopLogger(),
	}
	for _, fn := range opts {
		fn(&opt)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("dictrows: at least one slot required")
	}

	colKey := make(map[*Column]string)
	for key, spec := range specs {
		if key == "" {
			return nil, fmt.Errorf("dictrows: slot key must not be empty")
		}
		if spec == nil {
			return nil, fmt.Errorf("dictrows: slot %q is nil", key)
		}
		for _, col := range spec.slotColumns() {
			if prev, ok := colKey[col]; ok && prev != key {
				return nil, fmt.Errorf("dictrows: column %s fed by slots %q and %q", col, prev, key)
			}
			colKey[col] = key
		}
	}

	seen := make(map[*Table]bool)
	var tables []*Table
	for col := range colKey {
		if !seen[col.t] {
			seen[col.t] = true
			tables = append(tables, col.t)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].name < tables[j].name })

	d := &DictRows{codec: opt.codec, logger: opt.logger}
	for _, t := range tables {
		keys := make([]string, len(t.columns))
		for i, col := range t.columns {
			keys[i] = colKey[col]
		}
		d.tables = append(d.tables, tableKeys{table: t, keys: keys})
	}
	return d, nil
}

// Append fans one wide document out into every referenced table. A key
// absent from the document feeds nil, so sparse documents follow the
// incomplete-row rule per table.
func (d *DictRows) Append(doc map[string]any) error {
	for _, tk := range d.tables {
		sub := make([]any, len(tk.keys))
		for i, key := range tk.keys {
			if key != "" {
				sub[i] = doc[key]
			}
		}
		if _, _, err := tk.table.Construct(sub...); err != nil {
			return err
		}
	}
	return nil
}

// Extend appends each document in order. Like Rows.Extend it is not
// atomic.
func (d *DictRows) Extend(docs []map[string]any) error {
	for i, doc := range docs {
		if err := d.Append(doc); err != nil {
			d.logger.LogBulkLoad(len(d.tables), i, err)
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	d.logger.LogBulkLoad(len(d.tables), len(docs), nil)
	return nil
}

// ExtendJSON decodes data as a JSON array of objects with the loader's
// codec and appends each object.
//
// JSON numbers decode as float64; key values must be used consistently
// across loaders for dedup and joins to line up.
func (d *DictRows) ExtendJSON(data []byte) error {
	var docs []map[string]any
	if err := d.codec.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("decode bulk input: %w", err)
	}
	return d.Extend(docs)
}
