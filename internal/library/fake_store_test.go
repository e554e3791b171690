package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/cinelog/internal/domain"
)

var errInjected = errors.New("injected failure")

// fakeStore keeps rows in memory and fails on demand
type fakeStore struct {
	rows []domain.Movie

	failInsert  bool
	failLoad    bool
	failUpdate  bool
	inserts     int
	updateCalls []any
}

var _ domain.RecordStore = (*fakeStore)(nil)

func (f *fakeStore) Insert(_ context.Context, v domain.Values) error {
	f.inserts++
	if f.failInsert {
		return fmt.Errorf("%w: insert: %w", domain.ErrWrite, errInjected)
	}
	title, _ := v[domain.FieldTitle].(string)
	for _, r := range f.rows {
		if r.Title == title {
			return fmt.Errorf("%w: insert: UNIQUE constraint failed", domain.ErrWrite)
		}
	}
	m := domain.Movie{Title: title}
	m.ReleaseYear, _ = v[domain.FieldReleaseYear].(int)
	m.Genre, _ = v[domain.FieldGenre].(string)
	m.Director, _ = v[domain.FieldDirector].(string)
	m.Rating, _ = v[domain.FieldRating].(float64)
	w, _ := v[domain.FieldWatched].(int)
	m.Watched = w == 1
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeStore) DeleteByField(_ context.Context, field domain.Field, value any) (int64, error) {
	var kept []domain.Movie
	var n int64
	for _, r := range f.rows {
		if field == domain.FieldTitle && r.Title == value {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

func (f *fakeStore) UpdateField(_ context.Context, _ domain.Field, keyValue any, target domain.Field, newValue any) (int64, error) {
	f.updateCalls = append(f.updateCalls, newValue)
	if f.failUpdate {
		return 0, fmt.Errorf("%w: update: %w", domain.ErrWrite, errInjected)
	}
	var n int64
	for i, r := range f.rows {
		if r.Title != keyValue {
			continue
		}
		n++
		switch target {
		case domain.FieldTitle:
			f.rows[i].Title = newValue.(string)
		case domain.FieldReleaseYear:
			f.rows[i].ReleaseYear = newValue.(int)
		case domain.FieldGenre:
			f.rows[i].Genre = newValue.(string)
		case domain.FieldDirector:
			f.rows[i].Director = newValue.(string)
		case domain.FieldRating:
			f.rows[i].Rating = newValue.(float64)
		case domain.FieldWatched:
			f.rows[i].Watched = newValue.(int) == 1
		}
	}
	return n, nil
}

func (f *fakeStore) Query(context.Context, domain.Filter) (domain.RowSet, error) {
	return domain.RowSet{}, nil
}

func (f *fakeStore) QueryRaw(context.Context, string, ...any) (domain.RowSet, error) {
	return domain.RowSet{}, nil
}

func (f *fakeStore) Exists(_ context.Context, _ domain.Field, value any) (bool, error) {
	for _, r := range f.rows {
		if r.Title == value {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) LoadAll(context.Context) ([]domain.Movie, error) {
	if f.failLoad {
		return nil, fmt.Errorf("%w: query: %w", domain.ErrRead, errInjected)
	}
	return append([]domain.Movie(nil), f.rows...), nil
}
