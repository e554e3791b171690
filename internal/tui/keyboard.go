package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinelog/internal/domain"
)

// sortCycle is the order the sort key steps through
var sortCycle = []domain.Field{
	domain.FieldTitle,
	domain.FieldReleaseYear,
	domain.FieldRating,
	domain.FieldDirector,
	domain.FieldGenre,
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Typing into the list filter
	if m.List.IsFilterTyping() {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd := m.List.Update(msg)
		m.syncInspector()
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.List.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Add):
		m.Form.ShowAdd()
		return m, nil

	case key.Matches(msg, Keys.Edit):
		if sel, ok := m.List.Selected(); ok {
			m.Form.ShowEdit(sel)
		}
		return m, nil

	case key.Matches(msg, Keys.Delete):
		if sel, ok := m.List.Selected(); ok {
			m.pendingRemove = sel.Title
			m.Confirm.Show(fmt.Sprintf("Remove %q?", sel.Title))
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleWatched):
		if sel, ok := m.List.Selected(); ok {
			return m, ToggleWatchedCmd(m.Svc, sel)
		}
		return m, nil

	case key.Matches(msg, Keys.Import):
		m.InputModal.Show("Import movies from file", "", "path/to/movies.txt")
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		m.Loading = true
		return m, RefreshCmd(m.Svc)

	case key.Matches(msg, Keys.Sort):
		m.SortBy = nextSort(m.SortBy)
		m.reload()
		m.StatusMsg = "Sorted by " + strings.ToLower(m.SortBy.Label())
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusDelay)

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil
	}

	// Navigation
	cmd := m.List.Update(msg)
	m.syncInspector()
	return m, cmd
}

// routeToModal sends the key to the visible modal, if any
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.Form.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Form, cmd, submitted = m.Form.Update(msg)
		if !submitted {
			return true, m, cmd
		}

		if !m.Form.IsEditing() {
			return true, m, AddMovieCmd(m.Svc, m.Form.Values())
		}
		changes := m.Form.Changed()
		if len(changes) == 0 {
			m.Form.Hide()
			m.StatusMsg = "Nothing changed"
			m.StatusIsErr = false
			return true, m, ClearStatusCmd(statusDelay)
		}
		return true, m, UpdateMovieCmd(m.Svc, m.Form.Original().Title, changes)
	}

	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if !submitted {
			return true, m, cmd
		}

		path := strings.TrimSpace(m.InputModal.Value())
		if path == "" {
			m.InputModal.SetError("Enter the path of a file to import.")
			return true, m, nil
		}
		m.Loading = true
		return true, m, ImportFileCmd(m.Svc, path)
	}

	if m.Confirm.IsVisible() {
		var answered, confirmed bool
		m.Confirm, answered, confirmed = m.Confirm.Update(msg)
		if !answered {
			return true, m, nil
		}

		title := m.pendingRemove
		m.pendingRemove = ""
		if !confirmed {
			return true, m, nil
		}
		return true, m, RemoveMovieCmd(m.Svc, title)
	}

	return false, m, nil
}

func nextSort(current domain.Field) domain.Field {
	for i, f := range sortCycle {
		if f == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}
