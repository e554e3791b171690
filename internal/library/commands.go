package library

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/validate"
)

// Add validates m and stores it. A title already in the collection fails
// with ErrDuplicate and leaves the existing movie untouched.
func (s *Service) Add(ctx context.Context, m domain.Movie) error {
	m, err := validate.Movie(m)
	if err != nil {
		return err
	}

	if _, ok := s.cached(m.Title); ok {
		return fmt.Errorf("%w: %q", domain.ErrDuplicate, m.Title)
	}

	if err := s.store.Insert(ctx, m.Values()); err != nil {
		// The store may hold the title even though the cache does not
		if exists, existsErr := s.store.Exists(ctx, domain.FieldTitle, m.Title); existsErr == nil && exists {
			return fmt.Errorf("%w: %q", domain.ErrDuplicate, m.Title)
		}
		s.logger.Error("failed to add movie", "title", m.Title, "error", err)
		return err
	}

	s.mu.Lock()
	s.movies[m.Title] = &m
	s.mu.Unlock()

	s.logger.Debug("added movie", "title", m.Title)
	return nil
}

// AddFields validates six raw values (title, year, genre, director, rating,
// watched) and adds the resulting movie.
func (s *Service) AddFields(ctx context.Context, raw []string) error {
	m, err := validate.Record(raw)
	if err != nil {
		return err
	}
	return s.Add(ctx, m)
}

// Remove deletes the movie with the given title from the store and the cache.
func (s *Service) Remove(ctx context.Context, title string) error {
	title = key(title)

	n, err := s.store.DeleteByField(ctx, domain.FieldTitle, title)
	if err != nil {
		s.logger.Error("failed to remove movie", "title", title, "error", err)
		return err
	}

	s.mu.Lock()
	delete(s.movies, title)
	s.mu.Unlock()

	if n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, title)
	}
	s.logger.Debug("removed movie", "title", title)
	return nil
}

// UpdateField validates raw for field and sets it on the movie with the
// given title. Nothing is written when validation fails. After a successful
// write the cache is reloaded from the store.
func (s *Service) UpdateField(ctx context.Context, title string, field domain.Field, raw string) error {
	title = key(title)

	current, ok := s.cached(title)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, title)
	}

	value, err := validate.Field(field, raw)
	if err != nil {
		return err
	}

	if field == domain.FieldTitle {
		newTitle := value.(string)
		if _, taken := s.cached(newTitle); taken && newTitle != title {
			return fmt.Errorf("%w: %q", domain.ErrDuplicate, newTitle)
		}
	}

	stored := value
	if b, isBool := value.(bool); isBool {
		stored = domain.BoolToStored(b)
	}

	n, err := s.store.UpdateField(ctx, domain.FieldTitle, title, field, stored)
	if err != nil {
		s.logger.Error("failed to update movie", "title", title, "field", field, "error", err)
		return err
	}
	if n == 0 {
		// Removed behind our back
		s.mu.Lock()
		delete(s.movies, title)
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", domain.ErrNotFound, title)
	}

	updated := apply(current, field, value)
	s.mu.Lock()
	delete(s.movies, title)
	s.movies[updated.Title] = &updated
	s.mu.Unlock()

	s.logger.Debug("updated movie", "title", title, "field", field)

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after update failed", "error", err)
	}
	return nil
}

// UpdateFields applies several raw field changes to the movie with the given
// title. Every value is validated, and a new title checked for collisions,
// before anything is written. The title is written last.
func (s *Service) UpdateFields(ctx context.Context, title string, changes map[domain.Field]string) error {
	title = key(title)
	if _, ok := s.cached(title); !ok {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, title)
	}
	for field := range changes {
		if !slices.Contains(domain.RecordFields, field) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
		}
	}

	for _, field := range domain.RecordFields {
		raw, ok := changes[field]
		if !ok {
			continue
		}
		value, err := validate.Field(field, raw)
		if err != nil {
			return err
		}
		if field == domain.FieldTitle {
			newTitle := value.(string)
			if _, taken := s.cached(newTitle); taken && newTitle != title {
				return fmt.Errorf("%w: %q", domain.ErrDuplicate, newTitle)
			}
		}
	}

	for _, field := range domain.RecordFields[1:] {
		if raw, ok := changes[field]; ok {
			if err := s.UpdateField(ctx, title, field, raw); err != nil {
				return err
			}
		}
	}
	if raw, ok := changes[domain.FieldTitle]; ok {
		return s.UpdateField(ctx, title, domain.FieldTitle, raw)
	}
	return nil
}

// Refresh replaces the cache with a full read of the store. On failure the
// previous cache is kept.
func (s *Service) Refresh(ctx context.Context) error {
	movies, err := s.store.LoadAll(ctx)
	if err != nil {
		s.logger.Error("failed to refresh collection", "error", err)
		return err
	}

	fresh := make(map[string]*domain.Movie, len(movies))
	for i := range movies {
		m := movies[i]
		fresh[m.Title] = &m
	}

	s.mu.Lock()
	s.movies = fresh
	s.mu.Unlock()

	s.logger.Info("collection refreshed", "count", len(fresh))
	return nil
}

// apply returns m with field set to an already validated value
func apply(m domain.Movie, field domain.Field, value any) domain.Movie {
	switch field {
	case domain.FieldTitle:
		m.Title = value.(string)
	case domain.FieldReleaseYear:
		m.ReleaseYear = value.(int)
	case domain.FieldGenre:
		m.Genre = value.(string)
	case domain.FieldDirector:
		m.Director = value.(string)
	case domain.FieldRating:
		m.Rating = value.(float64)
	case domain.FieldWatched:
		m.Watched = value.(bool)
	}
	return m
}
