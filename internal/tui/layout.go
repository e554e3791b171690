package tui

// Layout proportions for the two panes
const (
	ListColumnPercent = 60 // Movie list
	MinColumnWidth    = 15

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// paneLayout holds calculated pane widths for the View
type paneLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateLayout computes pane widths based on inspector visibility
func (m Model) calculateLayout(availableWidth int) paneLayout {
	if !m.ShowInspector {
		return paneLayout{listWidth: availableWidth}
	}
	list := max(availableWidth*ListColumnPercent/100, MinColumnWidth)
	return paneLayout{
		listWidth:      list,
		inspectorWidth: max(availableWidth-list, 0),
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	layout := m.calculateLayout(m.Width)

	m.List.SetSize(layout.listWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
}
