package recgo

import "fmt"

// Cardinality is the statically-known result shape of a relation.
type Cardinality uint8

const (
	// CardinalityOne means every hop targets a unique column; the
	// relation yields exactly one record.
	CardinalityOne Cardinality = iota
	// CardinalityMany means one hop fans out; the relation yields an
	// ordered list of records.
	CardinalityMany
)

// String returns the string representation of the Cardinality.
func (c Cardinality) String() string {
	if c == CardinalityMany {
		return "Many"
	}
	return "One"
}

type hop struct {
	local  *Column
	remote *Column
}

// Query is an immutable fluent builder accumulating an ordered chain of
// equality-join hops. Each method returns a new Query with the updated
// chain, so partial chains can be shared and extended safely.
//
// After each hop the current table shifts to the remote column's table,
// so chains traverse across tables transitively (A -> B -> C).
type Query struct {
	root    *Table
	current *Table
	hops    []hop
	err     error
}

// NewQuery starts a join chain at table t.
func NewQuery(t *Table) Query {
	q := Query{root: t, current: t}
	if t == nil {
		q.err = fmt.Errorf("query requires a table")
	}
	return q
}

// Join appends one equality hop from the named column of the current
// table to remote. Wiring errors are deferred and reported by Compile.
func (q Query) Join(local string, remote *Column) Query {
	if q.err != nil {
		return q
	}
	if remote == nil {
		q.err = fmt.Errorf("join from %s.%s: remote column is nil", q.current.name, local)
		return q
	}
	localCol, ok := q.current.colByName[local]
	if !ok {
		q.err = &ErrColumnNotFound{Table: q.current.name, Column: local}
		return q
	}

	q.hops = append(append([]hop(nil), q.hops...), hop{local: localCol, remote: remote})
	q.current = remote.t
	return q
}

// Compile validates the chain and returns its relation accessor.
//
// At most one hop may target a non-unique column; a second fan-out makes
// the result cardinality ambiguous and fails with *ErrJoinCardinality.
// For every non-unique hop, Compile ensures the remote table carries a
// multi-value index on the target column, backfilled from the records
// already stored.
func (q Query) Compile() (*Relation, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.hops) == 0 {
		return nil, fmt.Errorf("query on %s has no joins", q.root.name)
	}

	var fanouts []string
	for _, h := range q.hops {
		if !h.remote.unique {
			fanouts = append(fanouts, h.remote.String())
		}
	}
	if len(fanouts) > 1 {
		err := &ErrJoinCardinality{Columns: fanouts}
		q.root.logger.LogCompile(q.root.name, len(q.hops), true, err)
		return nil, err
	}

	for _, h := range q.hops {
		if !h.remote.unique {
			h.remote.t.ensureMulti(h.remote)
		}
	}

	rel := &Relation{
		root: q.root,
		hops: append([]hop(nil), q.hops...),
		many: len(fanouts) == 1,
	}
	q.root.logger.LogCompile(q.root.name, len(q.hops), rel.many, nil)
	return rel, nil
}

// Relation is a compiled, lazily-evaluated traversal mapping a record to
// its related record or ordered list of records across a join chain.
//
// A Relation holds no data; every evaluation walks the current indexes,
// so records inserted after compilation are visible.
type Relation struct {
	root *Table
	hops []hop
	many bool
}

// Table returns the table the relation starts at.
func (rel *Relation) Table() *Table {
	return rel.root
}

// Cardinality returns the statically-known result shape.
func (rel *Relation) Cardinality() Cardinality {
	if rel.many {
		return CardinalityMany
	}
	return CardinalityOne
}

// One evaluates the relation for rec and returns the single related
// record. It fails for relations of CardinalityMany; a hop whose key has
// no match fails with *ErrLookupMiss.
func (rel *Relation) One(rec Record) (Record, error) {
	if rel.many {
		return Record{}, fmt.Errorf("relation from %s yields many records, use All", rel.root.name)
	}
	recs, err := rel.eval(rec)
	if err != nil {
		return Record{}, err
	}
	return recs[0], nil
}

// All evaluates the relation for rec and returns the related records in
// index order. For CardinalityOne relations the slice holds one record.
// A hop whose key has no match fails with *ErrLookupMiss.
func (rel *Relation) All(rec Record) ([]Record, error) {
	return rel.eval(rec)
}

func (rel *Relation) eval(rec Record) ([]Record, error) {
	if rec.t != rel.root {
		table := "<nil>"
		if rec.t != nil {
			table = rec.t.name
		}
		return nil, fmt.Errorf("relation from %s evaluated on record of %s", rel.root.name, table)
	}

	cur := []Record{rec}
	for _, h := range rel.hops {
		next := make([]Record, 0, len(cur))
		for _, r := range cur {
			key, err := h.local.Get(r)
			if err != nil {
				return nil, err
			}
			if h.remote.unique {
				related, err := h.remote.t.lookupUnique(h.remote, key)
				if err != nil {
					return nil, err
				}
				next = append(next, related)
			} else {
				related, err := h.remote.t.lookupMulti(h.remote, key)
				if err != nil {
					return nil, err
				}
				next = append(next, related...)
			}
		}
		cur = next
	}
	return cur, nil
}
