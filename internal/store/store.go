package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/cinelog/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// TableName is the table every statement targets
const TableName = "Movies"

// Store implements domain.RecordStore over a SQLite file.
//
// It holds only the file location. Each operation opens its own
// connection, runs one statement and releases everything before returning.
type Store struct {
	path   string
	logger *slog.Logger
}

var _ domain.RecordStore = (*Store)(nil)

// Connect verifies that path is an existing SQLite database containing the
// Movies table and returns a handle to it.
func Connect(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return nil, fmt.Errorf("%w: no database path given", domain.ErrConnection)
	}

	s := &Store{path: path, logger: logger}
	if err := s.checkFile(); err != nil {
		return nil, err
	}

	if err := s.checkSchema(ctx); err != nil {
		logger.Error("database rejected", "path", path, "error", err)
		return nil, err
	}

	logger.Info("connected to database", "path", path)
	return s, nil
}

// Initialize creates the database file (and parent directories) if needed,
// applies the schema and connects to it. Existing data is left untouched.
func Initialize(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return nil, fmt.Errorf("%w: no database path given", domain.ErrConnection)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", domain.ErrConnection, err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrConnection, path, err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply schema: %w", domain.ErrConnection, err)
	}
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %w", domain.ErrConnection, path, err)
	}

	return Connect(ctx, path, logger)
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// checkFile fails with ErrConnection unless the path is an existing regular file
func (s *Store) checkFile() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: file not found: %s", domain.ErrConnection, s.path)
		}
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file: %s", domain.ErrConnection, s.path)
	}
	return nil
}

// checkSchema fails with ErrSchema if the Movies table is absent. Any
// error reading the catalog means the engine rejected the file.
func (s *Store) checkSchema(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		var name string
		err := conn.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE",
			TableName,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSchema
		}
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConnection, err)
		}
		return nil
	})
}

// withConn opens the database, hands a single connection to fn and
// releases the connection and the pool on every return path.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) (retErr error) {
	if err := s.checkFile(); err != nil {
		return err
	}

	db, err := sql.Open(driverName, s.path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", domain.ErrConnection, s.path, err)
	}
	defer func() {
		if err := db.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("%w: close: %w", domain.ErrConnection, err)
		}
	}()

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	defer func() { _ = conn.Close() }()

	// Other processes may hold the file; wait briefly instead of failing with SQLITE_BUSY
	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}

	return fn(conn)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// FileExists reports whether a file exists at path, expanding a leading ~
func FileExists(path string) bool {
	_, err := os.Stat(expandHome(strings.TrimSpace(path)))
	return err == nil
}
