package recgo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/index"
)

func declareUsers(t *testing.T) *Table {
	t.Helper()
	users, err := Declare("User", []string{"id", "name"}, []string{"id"})
	require.NoError(t, err)
	return users
}

func collect(t *Table) []Record {
	var recs []Record
	for rec := range t.Records() {
		recs = append(recs, rec)
	}
	return recs
}

func TestDeclare(t *testing.T) {
	users := declareUsers(t)
	assert.Equal(t, "User", users.Name())
	assert.Equal(t, 0, users.Len())

	id := users.MustCol("id")
	assert.True(t, id.IsUnique())
	assert.Equal(t, "User.id", id.String())

	name, ok := users.Col("name")
	require.True(t, ok)
	assert.False(t, name.IsUnique())

	_, ok = users.Col("age")
	assert.False(t, ok)
	assert.Panics(t, func() { users.MustCol("age") })
}

func TestDeclareInvalid(t *testing.T) {
	_, err := Declare("", []string{"id"}, nil)
	assert.Error(t, err)

	_, err = Declare("T", nil, nil)
	assert.Error(t, err)

	_, err = Declare("T", []string{"id", "id"}, nil)
	assert.Error(t, err)

	_, err = Declare("T", []string{"id"}, []string{"name"})
	assert.Error(t, err)

	_, err = Declare("T", []string{"id"}, []string{"id", "id"})
	assert.Error(t, err)
}

func TestConstructIdempotent(t *testing.T) {
	users := declareUsers(t)

	first, ok, err := users.Construct(1, "Joe")
	require.NoError(t, err)
	require.True(t, ok)

	// Identical full tuple: exactly one stored record.
	again, ok, err := users.Construct(1, "Joe")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, first.Equal(again))
	assert.Equal(t, 1, users.Len())
	assert.Len(t, collect(users), 1)
}

func TestConstructConflict(t *testing.T) {
	users := declareUsers(t)

	_, ok, err := users.Construct(1, "Joe")
	require.NoError(t, err)
	require.True(t, ok)

	// Same key, different payload: schema violation, state unchanged.
	_, ok, err = users.Construct(1, "Sam")
	require.Error(t, err)
	assert.False(t, ok)

	var conflict *ErrUniqueConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "User", conflict.Table)
	assert.Equal(t, "id", conflict.Column)
	assert.Equal(t, 1, conflict.Key)

	assert.Equal(t, 1, users.Len())
	rec := collect(users)[0]
	assert.Equal(t, []any{1, "Joe"}, rec.Values())
}

func TestConstructConflictAcrossUniques(t *testing.T) {
	accounts, err := Declare("Account", []string{"id", "email", "plan"}, []string{"id", "email"})
	require.NoError(t, err)

	_, _, err = accounts.Construct(1, "joe@example.com", "free")
	require.NoError(t, err)
	_, _, err = accounts.Construct(2, "sam@example.com", "pro")
	require.NoError(t, err)

	// id matches record 1, email matches record 2: inconsistent.
	_, _, err = accounts.Construct(1, "sam@example.com", "free")
	var conflict *ErrUniqueConflict
	require.ErrorAs(t, err, &conflict)

	// id matches record 1, email is new: partial match.
	_, _, err = accounts.Construct(1, "new@example.com", "free")
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "id", conflict.Column)

	assert.Equal(t, 2, accounts.Len())
}

func TestConstructIncompleteRow(t *testing.T) {
	users := declareUsers(t)

	// Missing unique-key value: silently skipped.
	rec, ok, err := users.Construct(nil, "Joe")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, rec.Valid())
	assert.Equal(t, 0, users.Len())

	// A nil non-key value is stored as-is.
	_, ok, err = users.Construct(1, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, users.Len())
}

func TestConstructArity(t *testing.T) {
	users := declareUsers(t)
	_, _, err := users.Construct(1)
	assert.Error(t, err)
	_, _, err = users.Construct(1, "Joe", "extra")
	assert.Error(t, err)
}

func TestRecordsOrder(t *testing.T) {
	users := declareUsers(t)
	for i := 0; i < 5; i++ {
		_, ok, err := users.Construct(i, "user")
		require.NoError(t, err)
		require.True(t, ok)
	}

	recs := collect(users)
	require.Len(t, recs, 5)
	for i, rec := range recs {
		assert.Equal(t, []any{i, "user"}, rec.Values())
	}

	// Restartable.
	assert.Len(t, collect(users), 5)
}

func TestLookupUnique(t *testing.T) {
	users := declareUsers(t)
	_, _, err := users.Construct(1, "Joe")
	require.NoError(t, err)

	rec, err := users.LookupUnique(users.MustCol("id"), 1)
	require.NoError(t, err)
	assert.Equal(t, []any{1, "Joe"}, rec.Values())

	_, err = users.LookupUnique(users.MustCol("id"), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var miss *ErrLookupMiss
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, 2, miss.Key)

	_, err = users.LookupUnique(users.MustCol("name"), "Joe")
	assert.Error(t, err)
}

func TestIndexKind(t *testing.T) {
	users := declareUsers(t)
	articles, err := Declare("Article", []string{"id", "author_id"}, []string{"id"})
	require.NoError(t, err)

	assert.Equal(t, index.KindUnique, users.IndexKind(users.MustCol("id")))
	assert.Equal(t, index.KindNone, users.IndexKind(users.MustCol("name")))
	assert.Equal(t, index.KindNone, users.IndexKind(articles.MustCol("id")))

	_, err = NewQuery(users).
		Join("id", articles.MustCol("author_id")).
		Compile()
	require.NoError(t, err)
	assert.Equal(t, index.KindMulti, articles.IndexKind(articles.MustCol("author_id")))
}

func TestDefineRelation(t *testing.T) {
	users := declareUsers(t)
	articles, err := Declare("Article", []string{"id", "author_id"}, []string{"id"})
	require.NoError(t, err)

	author, err := NewQuery(articles).
		Join("author_id", users.MustCol("id")).
		Compile()
	require.NoError(t, err)

	require.NoError(t, articles.DefineRelation("author", author))

	got, ok := articles.Relation("author")
	require.True(t, ok)
	assert.Equal(t, author, got)

	_, ok = articles.Relation("reviewer")
	assert.False(t, ok)

	// Redefinition and foreign relations are rejected.
	assert.Error(t, articles.DefineRelation("author", author))
	assert.Error(t, users.DefineRelation("author", author))
	assert.Error(t, users.DefineRelation("nil", nil))
}

func TestExportJSON(t *testing.T) {
	users := declareUsers(t)
	_, _, err := users.Construct(1, "Joe")
	require.NoError(t, err)
	_, _, err = users.Construct(2, "Sam")
	require.NoError(t, err)

	data, err := users.ExportJSON(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Joe"},{"id":2,"name":"Sam"}]`, string(data))
}

func TestWithLogger(t *testing.T) {
	users, err := Declare("User", []string{"id"}, []string{"id"}, WithLogger(NoopLogger()))
	require.NoError(t, err)
	_, ok, err := users.Construct(1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Declare("T", []string{"id"}, nil, WithLogger(nil))
	require.NoError(t, err)
}

func TestErrNotFoundUnwrap(t *testing.T) {
	miss := &ErrLookupMiss{Table: "User", Column: "id", Key: 1}
	assert.True(t, errors.Is(miss, ErrNotFound))

	notFound := &ErrColumnNotFound{Table: "User", Column: "age"}
	assert.True(t, errors.Is(notFound, ErrNotFound))
}
