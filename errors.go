package recgo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the sentinel for lookups that matched nothing.
//
// Errors returned by relation evaluation and unique lookups satisfy
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("record not found")

// ErrUniqueConflict indicates an insert whose unique key matches an
// existing record that differs in some other column.
//
// This is a schema violation, not an update: the table state is left
// unchanged and neither first-write-wins nor last-write-wins applies.
type ErrUniqueConflict struct {
	Table  string
	Column string
	Key    any
}

func (e *ErrUniqueConflict) Error() string {
	return fmt.Sprintf("unique conflict on %s.%s: key %v matches an existing record with a different payload", e.Table, e.Column, e.Key)
}

// ErrJoinCardinality indicates a join chain with more than one hop
// targeting a non-unique column.
//
// Once a hop fans out to many records the chain cannot be re-scalarized,
// so a second fan-out is ambiguous and rejected at compile time.
type ErrJoinCardinality struct {
	Columns []string
}

func (e *ErrJoinCardinality) Error() string {
	return fmt.Sprintf("join chain fans out more than once (non-unique columns: %s)", strings.Join(e.Columns, ", "))
}

// ErrLookupMiss indicates a relation hop whose key value has no entry in
// the target index.
//
// Unwrap returns ErrNotFound.
type ErrLookupMiss struct {
	Table  string
	Column string
	Key    any
}

func (e *ErrLookupMiss) Error() string {
	return fmt.Sprintf("%s.%s has no record for key %v", e.Table, e.Column, e.Key)
}

func (e *ErrLookupMiss) Unwrap() error { return ErrNotFound }

// ErrColumnNotFound indicates a column accessor used against a record
// from a table that never declared that column.
//
// Unwrap returns ErrNotFound.
type ErrColumnNotFound struct {
	Table  string
	Column string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("table %s does not declare column %s", e.Table, e.Column)
}

func (e *ErrColumnNotFound) Unwrap() error { return ErrNotFound }
