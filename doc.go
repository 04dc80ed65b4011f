// Package recgo provides an embedded, in-memory relational record store.
//
// Recgo lets a program declare typed tables, insert rows with automatic
// deduplication and unique-key enforcement, bulk-load denormalized (wide,
// joined) input into several tables at once, and compile equality-join
// chains into lazy relation accessors.
//
// # Tables and Records
//
// A table is declared with an ordered column list and a set of unique
// columns. Each unique column is backed by a value-to-record index:
//
//	users, err := recgo.Declare("User", []string{"id", "name"}, []string{"id"})
//
// Construct builds a record from values in declared column order and
// inserts it, deduplicating against the unique indexes:
//
//   - A full-tuple duplicate returns the existing record (idempotent).
//   - A row missing a unique-key value is silently skipped (ok=false).
//   - A row sharing a unique key with an existing record but differing in
//     any other column fails with *ErrUniqueConflict; the table is unchanged.
//
// Iteration yields records in insertion order:
//
//	for rec := range users.Records() {
//	    fmt.Println(rec)
//	}
//
// # Bulk Loading
//
// Rows and DictRows fan one wide input row out into per-table inserts.
// A slot spec is either a single column or a Group, which feeds the same
// input slot into the matching column of several tables at once:
//
//	loader, err := recgo.NewRows(
//	    articles.MustCol("id"),
//	    articles.MustCol("title"),
//	    recgo.Group(articles.MustCol("author_id"), users.MustCol("id")),
//	    users.MustCol("name"),
//	)
//	err = loader.Extend([][]any{
//	    {1, "BREAKING NEWS", 1, "Joe"},
//	    {2, "EXCLUSIVE", 2, "Sam"},
//	})
//
// # Relations
//
// Query is an immutable fluent builder accumulating equality-join hops.
// Compile validates the chain, ensures the remote indexes exist, and
// returns a *Relation evaluated lazily per record:
//
//	author, err := recgo.NewQuery(articles).
//	    Join("author_id", users.MustCol("id")).
//	    Compile()
//	articles.DefineRelation("author", author)
//
//	rec, err := author.One(article)   // scalar: every hop is unique
//	recs, err := author.All(user)     // list: one hop fans out
//
// At most one hop in a chain may target a non-unique column; cardinality
// cannot be re-scalarized after fanning out, so ambiguous chains are
// rejected at compile time with *ErrJoinCardinality.
//
// A relation lookup miss is an error satisfying errors.Is(err, ErrNotFound),
// never a silent empty result.
//
// # Value Constraints
//
// Recgo does not type-check column values. Values of unique or joined
// columns are used as map keys and must be comparable Go values; a nil
// value in a unique column marks the row incomplete.
//
// # Concurrency
//
// Recgo is single-threaded by design. No internal locking exists;
// callers must serialize access externally.
package recgo
