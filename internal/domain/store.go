package domain

import "context"

// RecordStore is the durable home of the catalog. Every call performs a
// single statement; implementations hold no connection between calls.
type RecordStore interface {
	// Insert writes a row containing only the supplied fields
	Insert(ctx context.Context, values Values) error

	// DeleteByField removes every row where field equals value
	DeleteByField(ctx context.Context, field Field, value any) (int64, error)

	// UpdateField sets target to newValue on rows where keyField equals keyValue
	UpdateField(ctx context.Context, keyField Field, keyValue any, target Field, newValue any) (int64, error)

	// Query runs a structured select
	Query(ctx context.Context, filter Filter) (RowSet, error)

	// QueryRaw runs a caller supplied query; values must be passed as args
	QueryRaw(ctx context.Context, query string, args ...any) (RowSet, error)

	// Exists reports whether at least one row has field equal to value
	Exists(ctx context.Context, field Field, value any) (bool, error)

	// LoadAll returns every movie in the store
	LoadAll(ctx context.Context) ([]Movie, error)
}

// Filter describes a select against the Movies table.
// Zero values mean: all columns, no predicate, store order.
type Filter struct {
	Columns    []Field
	Where      Field
	Value      any
	SortBy     Field
	Descending bool
}

// RowSet is the result of a query: column names plus raw row values
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows
func (r RowSet) Len() int {
	return len(r.Rows)
}
