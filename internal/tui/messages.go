package tui

import (
	"github.com/mmcdole/cinelog/internal/library"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// MoviesRefreshedMsg signals that the collection was reloaded from the store
type MoviesRefreshedMsg struct{}

// MovieSavedMsg signals that a movie was added or edited
type MovieSavedMsg struct {
	Title string
	Added bool
}

// MovieSaveFailedMsg signals that the form could not be saved
type MovieSaveFailedMsg struct {
	Err error
}

// MovieRemovedMsg signals that a movie was removed
type MovieRemovedMsg struct {
	Title string
}

// ImportDoneMsg signals that a file import finished
type ImportDoneMsg struct {
	Summary library.ImportSummary
}

// ImportFailedMsg signals that the import file could not be read
type ImportFailedMsg struct {
	Err error
}

// StatusMsg updates the status bar
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar
type ClearStatusMsg struct{}
