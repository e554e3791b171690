package library

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/search"
)

// Cache-only reads. None of these touch the store.

// Get returns the cached movie with the given title
func (s *Service) Get(title string) (domain.Movie, error) {
	m, ok := s.cached(title)
	if !ok {
		return domain.Movie{}, fmt.Errorf("%w: %q", domain.ErrNotFound, key(title))
	}
	return m, nil
}

// List returns a copy of the collection sorted by field. An empty or
// unknown field sorts by title; ties are broken by title.
func (s *Service) List(sortBy domain.Field, descending bool) []domain.Movie {
	movies := s.snapshot()
	slices.SortFunc(movies, func(a, b domain.Movie) int {
		c := compareBy(sortBy, a, b)
		if c == 0 {
			c = strings.Compare(a.Title, b.Title)
		}
		if descending {
			return -c
		}
		return c
	})
	return movies
}

func compareBy(field domain.Field, a, b domain.Movie) int {
	switch field {
	case domain.FieldReleaseYear:
		return cmp.Compare(a.ReleaseYear, b.ReleaseYear)
	case domain.FieldGenre:
		return strings.Compare(a.Genre, b.Genre)
	case domain.FieldDirector:
		return strings.Compare(a.Director, b.Director)
	case domain.FieldRating:
		return cmp.Compare(a.Rating, b.Rating)
	case domain.FieldWatched:
		return cmp.Compare(domain.BoolToStored(a.Watched), domain.BoolToStored(b.Watched))
	default:
		return strings.Compare(a.Title, b.Title)
	}
}

// Count returns the number of cached movies
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// WatchedCount returns the number of cached movies marked watched
func (s *Service) WatchedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.movies {
		if m.Watched {
			n++
		}
	}
	return n
}

// AverageRating returns the mean rating of the cached movies rounded to one
// decimal place, or 0 when the collection is empty.
func (s *Service) AverageRating() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.movies) == 0 {
		s.logger.Info("no movies in collection, average rating is 0")
		return 0
	}

	var total float64
	for _, m := range s.movies {
		total += m.Rating
	}
	avg := total / float64(len(s.movies))
	return math.Round(avg*10) / 10
}

// Search ranks cached movies against query, best match first
func (s *Service) Search(query string) []search.Result {
	// sorted input keeps equal scores in a stable order
	results := search.Movies(query, s.List(domain.FieldTitle, false))
	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}
