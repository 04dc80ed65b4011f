// Package index provides the per-column indexes backing recgo tables.
//
// Two index shapes exist:
//
//   - Unique: value -> single row position. Built eagerly for every
//     declared unique column.
//   - Multi: value -> Roaring Bitmap of row positions. Built eagerly when
//     a join chain targets a non-unique column, and backfilled from the
//     rows already present.
//
// Row positions are dense and append-only, so ascending bitmap iteration
// yields records in insertion order.
//
// Index keys are column values used directly as map keys; callers must
// only index comparable values. Indexes are not safe for concurrent use.
package index
