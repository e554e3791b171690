package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelog/internal/tui/styles"
)

// ConfirmModal asks a yes/no question
type ConfirmModal struct {
	visible  bool
	question string
}

// Show displays the modal
func (m *ConfirmModal) Show(question string) {
	m.visible = true
	m.question = question
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Update returns (modal, answered, confirmed). Any key but y/enter/n/esc is ignored.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m, false, false
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.Hide()
		return m, true, true
	case "n", "N", "esc":
		m.Hide()
		return m, true, false
	}
	return m, false, false
}

// View renders the modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}
	help := styles.HelpKeyStyle.Render("y") + styles.HelpDescStyle.Render(" yes  ") +
		styles.HelpKeyStyle.Render("n") + styles.HelpDescStyle.Render(" no")
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.question),
		help,
	))
}
