package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore initializes an empty catalog in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.db")
	s, err := Initialize(context.Background(), path, nil)
	require.NoError(t, err)
	return s
}

func inception() domain.Movie {
	return domain.Movie{
		Title:       "Inception",
		ReleaseYear: 2010,
		Genre:       "Science Fiction",
		Director:    "Christopher Nolan",
		Rating:      95,
		Watched:     true,
	}
}

// rawExec runs a statement directly against the file, bypassing Store.
func rawExec(t *testing.T, path, query string, args ...any) {
	t.Helper()
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(query, args...)
	require.NoError(t, err)
}

func TestConnect_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")

	_, err := Connect(context.Background(), path, nil)
	assert.ErrorIs(t, err, domain.ErrConnection)

	// Connect never creates the file
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileExists(t *testing.T) {
	s := createTestStore(t)
	assert.True(t, FileExists(s.Path()))
	assert.False(t, FileExists(filepath.Join(t.TempDir(), "nope.db")))
}

func TestConnect_EmptyPath(t *testing.T) {
	_, err := Connect(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, domain.ErrConnection)
}

func TestConnect_Directory(t *testing.T) {
	_, err := Connect(context.Background(), t.TempDir(), nil)
	assert.ErrorIs(t, err, domain.ErrConnection)
}

func TestConnect_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	junk := strings.Repeat("this is definitely not a sqlite file\n", 32)
	require.NoError(t, os.WriteFile(path, []byte(junk), 0644))

	_, err := Connect(context.Background(), path, nil)
	assert.ErrorIs(t, err, domain.ErrConnection)
}

func TestConnect_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	rawExec(t, path, "CREATE TABLE Books (ID INTEGER PRIMARY KEY, Title TEXT)")

	_, err := Connect(context.Background(), path, nil)
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.NotErrorIs(t, err, domain.ErrConnection)
}

func TestConnect_ExistingCatalog(t *testing.T) {
	s := createTestStore(t)

	again, err := Connect(context.Background(), s.Path(), nil)
	require.NoError(t, err)
	assert.Equal(t, s.Path(), again.Path())
}

func TestInitialize_KeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, inception().Values()))

	s2, err := Initialize(ctx, s.Path(), nil)
	require.NoError(t, err)

	n, err := s2.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInsertAndLoadAll(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.Insert(ctx, inception().Values()))

	movies, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, inception(), movies[0])
}

func TestInsert_Sparse(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.Insert(ctx, domain.Values{domain.FieldTitle: "Heat"}))

	rs, err := s.Query(ctx, domain.Filter{
		Columns: []domain.Field{domain.FieldTitle, domain.FieldGenre},
		Where:   domain.FieldTitle,
		Value:   "Heat",
	})
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "Heat", rs.Rows[0][0])
	assert.Nil(t, rs.Rows[0][1])
}

func TestInsert_Empty(t *testing.T) {
	s := createTestStore(t)
	err := s.Insert(context.Background(), domain.Values{})
	assert.ErrorIs(t, err, domain.ErrWrite)
}

func TestInsert_DuplicateTitleRejected(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.Insert(ctx, inception().Values()))
	err := s.Insert(ctx, inception().Values())
	assert.ErrorIs(t, err, domain.ErrWrite)
}

func TestInsert_ValuesAreBound(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	title := `x'); DROP TABLE Movies; --`
	require.NoError(t, s.Insert(ctx, domain.Values{domain.FieldTitle: title}))

	ok, err := s.Exists(ctx, domain.FieldTitle, title)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInsert_UnknownField(t *testing.T) {
	s := createTestStore(t)
	err := s.Insert(context.Background(), domain.Values{domain.Field("Title; DROP"): "x"})
	// unknown keys are not part of Fields() so nothing is left to insert
	assert.ErrorIs(t, err, domain.ErrWrite)
}

func TestDeleteByField(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, inception().Values()))

	n, err := s.DeleteByField(ctx, domain.FieldTitle, "Inception")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.DeleteByField(ctx, domain.FieldTitle, "Inception")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = s.DeleteByField(ctx, domain.Field("bogus"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestUpdateField(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, inception().Values()))

	n, err := s.UpdateField(ctx, domain.FieldTitle, "Inception", domain.FieldRating, 80.5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.UpdateField(ctx, domain.FieldTitle, "Inception", domain.FieldWatched, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	movies, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 80.5, movies[0].Rating)
	assert.False(t, movies[0].Watched)

	n, err = s.UpdateField(ctx, domain.FieldTitle, "Missing", domain.FieldRating, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = s.UpdateField(ctx, domain.FieldTitle, "Inception", domain.Field("bogus"), 1)
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, inception().Values()))

	ok, err := s.Exists(ctx, domain.FieldTitle, "Inception")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, domain.FieldTitle, "Tenet")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuery_Sorted(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	for _, v := range []domain.Values{
		{domain.FieldTitle: "B", domain.FieldRating: 50.0},
		{domain.FieldTitle: "A", domain.FieldRating: 90.0},
		{domain.FieldTitle: "C", domain.FieldRating: 10.0},
	} {
		require.NoError(t, s.Insert(ctx, v))
	}

	rs, err := s.Query(ctx, domain.Filter{
		Columns:    []domain.Field{domain.FieldTitle},
		SortBy:     domain.FieldRating,
		Descending: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Title"}, rs.Columns)
	require.Equal(t, 3, rs.Len())
	assert.Equal(t, "A", rs.Rows[0][0])
	assert.Equal(t, "B", rs.Rows[1][0])
	assert.Equal(t, "C", rs.Rows[2][0])
}

func TestQuery_AllColumnsByDefault(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, inception().Values()))

	rs, err := s.Query(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Title", "Release_Year", "Genre", "Director", "Rating", "Watched_Status"}, rs.Columns)
}

func TestQuery_RejectsUnknownColumn(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Query(context.Background(), domain.Filter{SortBy: domain.Field("1; DROP TABLE Movies")})
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestQueryRaw(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.Insert(ctx, inception().Values()))

	rs, err := s.QueryRaw(ctx, `SELECT Title FROM Movies WHERE Watched_Status = ?`, true)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "Inception", rs.Rows[0][0])

	_, err = s.QueryRaw(ctx, `SELECT * FROM Nowhere`)
	assert.ErrorIs(t, err, domain.ErrRead)
}

func TestLoadAll_LegacyBooleans(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	rawExec(t, s.Path(), `INSERT INTO Movies (Title, Watched_Status) VALUES ('Old', 'true'), ('Older', 'False'), ('Oldest', 1)`)

	movies, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.True(t, movies[0].Watched)
	assert.False(t, movies[1].Watched)
	assert.True(t, movies[2].Watched)
}

func TestOperations_FileRemovedAfterConnect(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, os.Remove(s.Path()))

	_, err := s.LoadAll(ctx)
	assert.ErrorIs(t, err, domain.ErrConnection)

	// A missing file must not be recreated by a write
	err = s.Insert(ctx, inception().Values())
	assert.ErrorIs(t, err, domain.ErrConnection)
	_, statErr := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(statErr))
}
