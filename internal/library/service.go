// Package library is the collection manager: an in-memory view of the
// catalog keyed by title, kept in step with the record store.
package library

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/cinelog/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Service owns the title-keyed cache and writes through to the store.
// Writes reach the store before the cache is touched, so a failed write
// never leaves a movie cached that the store does not hold.
type Service struct {
	store  domain.RecordStore
	logger *slog.Logger

	mu     sync.RWMutex
	movies map[string]*domain.Movie
}

// NewService creates a service with an empty cache. Call Refresh to load
// the store contents.
func NewService(store domain.RecordStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		logger: logger,
		movies: make(map[string]*domain.Movie),
	}
}

// key normalizes a caller supplied title the way stored titles are
func key(title string) string {
	return norm.NFC.String(strings.TrimSpace(title))
}

// cached returns a copy of the cached movie for title
func (s *Service) cached(title string) (domain.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[key(title)]
	if !ok {
		return domain.Movie{}, false
	}
	return *m, true
}

func (s *Service) snapshot() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, *m)
	}
	return out
}
