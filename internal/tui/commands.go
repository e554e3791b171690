package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/library"
)

// Command factories for async operations

const storeTimeout = 10 * time.Second

// RefreshCmd reloads the collection from the store
func RefreshCmd(svc *library.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Refresh(ctx); err != nil {
			return ErrMsg{Err: err, Context: "refreshing movies"}
		}
		return MoviesRefreshedMsg{}
	}
}

// AddMovieCmd validates and adds a movie from raw form values
func AddMovieCmd(svc *library.Service, values []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.AddFields(ctx, values); err != nil {
			return MovieSaveFailedMsg{Err: err}
		}
		return MovieSavedMsg{Title: strings.TrimSpace(values[0]), Added: true}
	}
}

// UpdateMovieCmd applies changed fields to the movie titled title. Nothing
// is written unless every change is valid.
func UpdateMovieCmd(svc *library.Service, title string, changes map[domain.Field]string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.UpdateFields(ctx, title, changes); err != nil {
			return MovieSaveFailedMsg{Err: err}
		}
		if newTitle, ok := changes[domain.FieldTitle]; ok {
			title = strings.TrimSpace(newTitle)
		}
		return MovieSavedMsg{Title: title}
	}
}

// ToggleWatchedCmd flips the watched flag of m
func ToggleWatchedCmd(svc *library.Service, m domain.Movie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		value := "true"
		if m.Watched {
			value = "false"
		}
		if err := svc.UpdateField(ctx, m.Title, domain.FieldWatched, value); err != nil {
			return ErrMsg{Err: err, Context: "updating " + m.Title}
		}
		return MovieSavedMsg{Title: m.Title}
	}
}

// RemoveMovieCmd removes the movie titled title
func RemoveMovieCmd(svc *library.Service, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if err := svc.Remove(ctx, title); err != nil {
			return ErrMsg{Err: err, Context: "removing " + title}
		}
		return MovieRemovedMsg{Title: title}
	}
}

// ImportFileCmd imports the delimited text file at path
func ImportFileCmd(svc *library.Service, path string) tea.Cmd {
	return func() tea.Msg {
		// Imports touch the store once per line, so allow more time
		ctx, cancel := context.WithTimeout(context.Background(), 6*storeTimeout)
		defer cancel()

		summary, err := svc.ImportFile(ctx, path)
		if err != nil {
			return ImportFailedMsg{Err: err}
		}
		return ImportDoneMsg{Summary: summary}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
