package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/cinelog/internal/domain"
)

// Query runs a structured select built from filter
func (s *Store) Query(ctx context.Context, filter domain.Filter) (domain.RowSet, error) {
	query, args, err := buildSelect(filter)
	if err != nil {
		return domain.RowSet{}, err
	}
	return s.QueryRaw(ctx, query, args...)
}

// QueryRaw runs a caller supplied select. Values must be passed as args,
// never spliced into the query text.
func (s *Store) QueryRaw(ctx context.Context, query string, args ...any) (domain.RowSet, error) {
	bound := make([]any, len(args))
	for i, a := range args {
		bound[i] = bindValue(a)
	}

	var rs domain.RowSet
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, bound...)
		if err != nil {
			return fmt.Errorf("%w: query: %w", domain.ErrRead, err)
		}
		defer rows.Close()

		rs, err = scanRowSet(rows)
		if err != nil {
			return fmt.Errorf("%w: query: %w", domain.ErrRead, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to query records", "error", err)
		return domain.RowSet{}, err
	}
	return rs, nil
}

// LoadAll returns every movie in insertion order
func (s *Store) LoadAll(ctx context.Context) ([]domain.Movie, error) {
	rs, err := s.Query(ctx, domain.Filter{Columns: domain.RecordFields, SortBy: domain.FieldID})
	if err != nil {
		return nil, err
	}

	movies := make([]domain.Movie, 0, rs.Len())
	for _, row := range rs.Rows {
		movies = append(movies, decodeMovie(row))
	}
	s.logger.Debug("loaded movies", "count", len(movies))
	return movies, nil
}

// Count returns the number of rows in the Movies table
func (s *Store) Count(ctx context.Context) (int, error) {
	rs, err := s.QueryRaw(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(TableName)))
	if err != nil {
		return 0, err
	}
	if rs.Len() == 0 || len(rs.Rows[0]) == 0 {
		return 0, nil
	}
	return asInt(rs.Rows[0][0]), nil
}

func buildSelect(filter domain.Filter) (string, []any, error) {
	fields := filter.Columns
	if len(fields) == 0 {
		fields = domain.AllFields
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		col, err := column(f)
		if err != nil {
			return "", nil, err
		}
		cols[i] = col
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(TableName))

	var args []any
	if filter.Where != "" {
		col, err := column(filter.Where)
		if err != nil {
			return "", nil, err
		}
		fmt.Fprintf(&b, " WHERE %s = ?", col)
		args = append(args, filter.Value)
	}

	if filter.SortBy != "" {
		col, err := column(filter.SortBy)
		if err != nil {
			return "", nil, err
		}
		fmt.Fprintf(&b, " ORDER BY %s", col)
		if filter.Descending {
			b.WriteString(" DESC")
		}
	}

	return b.String(), args, nil
}

func scanRowSet(rows *sql.Rows) (domain.RowSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return domain.RowSet{}, err
	}

	rs := domain.RowSet{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return domain.RowSet{}, err
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, vals)
	}
	return rs, rows.Err()
}

// decodeMovie reads a row of the six record columns. Rows written by other
// tools may hold text where numbers are expected, so decoding is lenient.
func decodeMovie(row []any) domain.Movie {
	get := func(i int) any {
		if i < len(row) {
			return row[i]
		}
		return nil
	}
	return domain.Movie{
		Title:       asString(get(0)),
		ReleaseYear: asInt(get(1)),
		Genre:       asString(get(2)),
		Director:    asString(get(3)),
		Rating:      asFloat(get(4)),
		Watched:     asBool(get(5)),
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	default:
		return 0
	}
}

// asBool accepts 1/0 and the tokens true/false
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1"
	default:
		return false
	}
}
