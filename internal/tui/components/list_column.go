package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ListColumn is a scrollable, filterable list of movies
type ListColumn struct {
	movies []domain.Movie

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string
	keys  ListColumnKeyMap

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into movies
}

// NewListColumn creates an empty movie column
func NewListColumn(title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		title:       title,
		keys:        DefaultListColumnKeyMap(),
		filterInput: ti,
		focused:     true,
	}
}

// Update handles navigation and filter typing
func (c *ListColumn) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.clearFilter()
				return nil
			case "enter":
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.clearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	// Filter applied but blurred
	if c.filterActive {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, c.keys.Escape):
				c.clearFilter()
				return nil
			case key.Matches(keyMsg, c.keys.Filter):
				c.filterInput.Focus()
				return nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, c.keys.Down):
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case key.Matches(keyMsg, c.keys.Up):
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case key.Matches(keyMsg, c.keys.Home):
			c.cursor = 0
			c.offset = 0
		case key.Matches(keyMsg, c.keys.End):
			c.cursor = count - 1
			c.ensureVisible()
		case key.Matches(keyMsg, c.keys.HalfDown):
			c.cursor = min(c.cursor+c.maxVisible/2, count-1)
			c.ensureVisible()
		case key.Matches(keyMsg, c.keys.HalfUp):
			c.cursor = max(c.cursor-c.maxVisible/2, 0)
			c.ensureVisible()
		}
	}
	return nil
}

// View renders the bordered column
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame size so the rendered box is exactly c.width x c.height
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *ListColumn) renderContent() string {
	var b strings.Builder
	inner := c.width - BorderWidth

	header := c.title
	if c.filterActive && c.filterQuery != "" {
		header = fmt.Sprintf("%s (%d/%d)", c.title, c.ItemCount(), len(c.movies))
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(header, inner)))
	b.WriteString("\n")

	if c.filterActive {
		b.WriteString(c.filterInput.View())
		b.WriteString("\n")
	}

	count := c.ItemCount()
	if count == 0 {
		msg := "No movies yet. Press a to add one."
		if c.filterActive {
			msg = "No matches."
		}
		b.WriteString(styles.DimStyle.Render(msg))
		return b.String()
	}

	if c.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
	}
	b.WriteString("\n")

	end := min(c.offset+c.maxVisible, count)
	for i := c.offset; i < end; i++ {
		b.WriteString(c.renderRow(c.movies[c.mapIndex(i)], i == c.cursor, inner))
		b.WriteString("\n")
	}

	if end < count {
		b.WriteString(styles.DimStyle.Render("↓ more"))
	}
	return b.String()
}

func (c *ListColumn) renderRow(m domain.Movie, selected bool, width int) string {
	year := fmt.Sprintf(" %d", m.ReleaseYear)
	// indicator + space + year + margins
	titleWidth := max(width-2-len(year)-2, 1)

	dim := styles.DimGray
	return styles.RenderListRow([]styles.RowPart{
		{Text: styles.RenderWatched(m.Watched) + " "},
		{Text: styles.Pad(styles.Truncate(m.Title, titleWidth), titleWidth)},
		{Text: year, Foreground: &dim},
	}, selected, width)
}

// SetSize sets the outer dimensions of the column
func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

// SetFocused toggles the active border and key handling
func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

// SetItems replaces the list contents, keeping the selection on the movie
// with the same title when it is still present
func (c *ListColumn) SetItems(movies []domain.Movie) {
	var keep string
	if m, ok := c.Selected(); ok {
		keep = m.Title
	}

	c.movies = movies
	if c.filterActive {
		c.applyFilter()
	}

	c.cursor = 0
	for i := 0; i < c.ItemCount(); i++ {
		if c.movies[c.mapIndex(i)].Title == keep {
			c.cursor = i
			break
		}
	}
	c.ensureVisible()
}

// Selected returns the movie under the cursor
func (c *ListColumn) Selected() (domain.Movie, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.Movie{}, false
	}
	return c.movies[c.mapIndex(c.cursor)], true
}

// SelectTitle moves the cursor to the movie with the given title
func (c *ListColumn) SelectTitle(title string) bool {
	for i := 0; i < c.ItemCount(); i++ {
		if c.movies[c.mapIndex(i)].Title == title {
			c.cursor = i
			c.ensureVisible()
			return true
		}
	}
	return false
}

// SelectedIndex returns the cursor position within the visible items
func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

// ItemCount returns the number of visible (filtered) items
func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.movies)
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil {
		return c.filteredIdx[i]
	}
	return i
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior height minus the title line and both scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	// Match against title and director, case-insensitively
	targets := make([]string, len(c.movies))
	for i, m := range c.movies {
		targets[i] = strings.ToLower(m.Title + " " + m.Director)
	}

	matches := fuzzy.Find(strings.ToLower(query), targets)
	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}
