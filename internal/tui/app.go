package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/library"
	"github.com/mmcdole/cinelog/internal/tui/components"
	"github.com/mmcdole/cinelog/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

const statusDelay = 3 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Svc    *library.Service
	logger *slog.Logger

	// UI Components
	List       *components.ListColumn
	Inspector  components.Inspector
	Form       components.MovieForm
	InputModal components.InputModal // Import path prompt
	Confirm    components.ConfirmModal

	SortBy domain.Field

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	Loading       bool
	ShowInspector bool

	pendingRemove string
}

// NewModel creates a new application model
func NewModel(svc *library.Service, logger *slog.Logger, sortBy domain.Field) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if !sortBy.Valid() || sortBy == domain.FieldID {
		sortBy = domain.FieldTitle
	}
	return Model{
		State:         StateBrowsing,
		Svc:           svc,
		logger:        logger,
		List:          components.NewListColumn("Movies"),
		Inspector:     components.NewInspector(),
		Form:          components.NewMovieForm(),
		InputModal:    components.NewInputModal(),
		SortBy:        sortBy,
		ShowInspector: true,
		Loading:       true,
	}
}

// Init loads the collection
func (m Model) Init() tea.Cmd {
	return RefreshCmd(m.Svc)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case MoviesRefreshedMsg:
		m.Loading = false
		m.reload()
		return m, nil

	case MovieSavedMsg:
		m.Form.Hide()
		m.reload()
		if m.List.SelectTitle(msg.Title) {
			m.syncInspector()
		}
		verb := "Updated"
		if msg.Added {
			verb = "Added"
		}
		return m.setStatus(fmt.Sprintf("%s %q.", verb, msg.Title), false)

	case MovieSaveFailedMsg:
		// Some fields of an edit may already be written
		m.reload()
		m.Form.SetError(domain.Reason(msg.Err))
		m.logger.Debug("form save failed", "error", msg.Err)
		return m, nil

	case MovieRemovedMsg:
		m.reload()
		return m.setStatus(fmt.Sprintf("Removed %q.", msg.Title), false)

	case ImportDoneMsg:
		m.Loading = false
		m.InputModal.Hide()
		m.reload()
		s := msg.Summary
		return m.setStatus(fmt.Sprintf("Imported %d of %d lines.", s.Accepted, s.Lines), false)

	case ImportFailedMsg:
		m.Loading = false
		m.InputModal.SetError(domain.Reason(msg.Err))
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.logger.Error("tui operation failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input messages go to the visible modal
	var cmd tea.Cmd
	switch {
	case m.Form.IsVisible():
		m.Form, cmd, _ = m.Form.Update(msg)
	case m.InputModal.IsVisible():
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
	}
	return m, cmd
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusDelay)
}

// reload copies the cached collection into the list
func (m *Model) reload() {
	m.List.SetItems(m.Svc.List(m.SortBy, m.SortBy == domain.FieldRating))
	m.syncInspector()
}

// syncInspector shows the selected movie in the inspector
func (m *Model) syncInspector() {
	if sel, ok := m.List.Selected(); ok {
		m.Inspector.SetMovie(sel)
		return
	}
	m.Inspector.Clear()
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	content := m.List.View()
	if m.ShowInspector {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.Inspector.View())
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFooter(),
	)

	// Overlay modals
	var modal string
	switch {
	case m.Form.IsVisible():
		modal = m.Form.View()
	case m.InputModal.IsVisible():
		modal = m.InputModal.View()
	case m.Confirm.IsVisible():
		modal = m.Confirm.View()
	}
	if modal != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal)
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		left = styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: collection summary
	center := styles.DimStyle.Render(fmt.Sprintf("%d movies · %d watched · avg %.1f",
		m.Svc.Count(), m.Svc.WatchedCount(), m.Svc.AverageRating()))

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      MOVIES
  j/k        Up/down               a      Add
  g/Home     First item            e      Edit
  G/End      Last item             x      Remove
  Ctrl+u/d   Scroll half page      w      Toggle watched
                                   i      Import from file

VIEW                            OTHER
  /          Filter                r      Reload from database
  s          Cycle sort            q      Quit
  Tab        Toggle inspector      ?      This help
                                   Esc    Close / Cancel

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
