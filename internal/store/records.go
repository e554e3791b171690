package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmcdole/cinelog/internal/domain"
)

// Insert writes one row containing only the supplied fields
func (s *Store) Insert(ctx context.Context, values domain.Values) error {
	fields := values.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("%w: insert: no values", domain.ErrWrite)
	}

	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		col, err := column(f)
		if err != nil {
			return err
		}
		cols[i] = col
		marks[i] = "?"
		args[i] = bindValue(values[f])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(TableName), strings.Join(cols, ", "), strings.Join(marks, ", "))

	err := s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insert: %w", domain.ErrWrite, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to insert record", "fields", len(fields), "error", err)
		return err
	}
	s.logger.Debug("inserted record", "fields", len(fields))
	return nil
}

// DeleteByField removes every row where field equals value and returns the
// number of rows removed
func (s *Store) DeleteByField(ctx context.Context, field domain.Field, value any) (int64, error) {
	col, err := column(field)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quoteIdent(TableName), col)

	var affected int64
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, bindValue(value))
		if err != nil {
			return fmt.Errorf("%w: delete: %w", domain.ErrWrite, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: delete: %w", domain.ErrWrite, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to delete records", "field", field, "error", err)
		return 0, err
	}
	s.logger.Debug("deleted records", "field", field, "rows", affected)
	return affected, nil
}

// UpdateField sets target to newValue on rows where keyField equals keyValue
// and returns the number of rows changed
func (s *Store) UpdateField(ctx context.Context, keyField domain.Field, keyValue any, target domain.Field, newValue any) (int64, error) {
	keyCol, err := column(keyField)
	if err != nil {
		return 0, err
	}
	targetCol, err := column(target)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", quoteIdent(TableName), targetCol, keyCol)

	var affected int64
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, bindValue(newValue), bindValue(keyValue))
		if err != nil {
			return fmt.Errorf("%w: update: %w", domain.ErrWrite, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: update: %w", domain.ErrWrite, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update records", "field", target, "error", err)
		return 0, err
	}
	s.logger.Debug("updated records", "field", target, "rows", affected)
	return affected, nil
}

// Exists reports whether at least one row has field equal to value
func (s *Store) Exists(ctx context.Context, field domain.Field, value any) (bool, error) {
	col, err := column(field)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ? LIMIT 1", quoteIdent(TableName), col)

	var found bool
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, bindValue(value))
		if err != nil {
			return fmt.Errorf("%w: exists: %w", domain.ErrRead, err)
		}
		defer rows.Close()
		found = rows.Next()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: exists: %w", domain.ErrRead, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// column resolves a field to its quoted column identifier. Only fields from
// the schema whitelist can reach a statement.
func column(f domain.Field) (string, error) {
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}
	return quoteIdent(f.Column()), nil
}

// quoteIdent wraps an identifier in double quotes, doubling embedded quotes
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// bindValue converts values to their stored representation
func bindValue(v any) any {
	if b, ok := v.(bool); ok {
		return domain.BoolToStored(b)
	}
	return v
}
