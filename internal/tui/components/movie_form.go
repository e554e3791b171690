package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/tui/styles"
	"github.com/mmcdole/cinelog/internal/validate"
)

var formPlaceholders = map[domain.Field]string{
	domain.FieldTitle:       "1-45 characters",
	domain.FieldReleaseYear: "1900-2025",
	domain.FieldGenre:       "Drama, Science Fiction, ...",
	domain.FieldDirector:    "letters and spaces",
	domain.FieldRating:      "0-100",
	domain.FieldWatched:     "true or false",
}

// MovieForm collects the six movie fields, either for a new movie or for
// editing an existing one
type MovieForm struct {
	visible  bool
	editing  bool
	original domain.Movie
	inputs   []textinput.Model
	focus    int
	err      string
}

// NewMovieForm creates a hidden form
func NewMovieForm() MovieForm {
	inputs := make([]textinput.Model, len(domain.RecordFields))
	for i, f := range domain.RecordFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = formPlaceholders[f]
		ti.PlaceholderStyle = styles.DimStyle
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.Width = 30
		ti.CharLimit = 64
		inputs[i] = ti
	}
	return MovieForm{inputs: inputs}
}

// ShowAdd opens an empty form
func (f *MovieForm) ShowAdd() {
	f.open(false, domain.Movie{})
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

// ShowEdit opens the form pre-filled with m
func (f *MovieForm) ShowEdit(m domain.Movie) {
	f.open(true, m)
	for i, field := range domain.RecordFields {
		f.inputs[i].SetValue(FormatField(m, field))
		f.inputs[i].CursorEnd()
	}
}

func (f *MovieForm) open(editing bool, m domain.Movie) {
	f.visible = true
	f.editing = editing
	f.original = m
	f.err = ""
	f.setFocus(0)
}

// Hide dismisses the form
func (f *MovieForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f MovieForm) IsVisible() bool {
	return f.visible
}

// IsEditing reports whether the form edits an existing movie
func (f MovieForm) IsEditing() bool {
	return f.editing
}

// Original returns the movie being edited
func (f MovieForm) Original() domain.Movie {
	return f.original
}

// SetError shows a reason at the bottom of the form
func (f *MovieForm) SetError(reason string) {
	f.err = reason
}

// Error returns the reason currently shown, if any
func (f MovieForm) Error() string {
	return f.err
}

// Values returns the raw input values in field order
func (f MovieForm) Values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = f.inputs[i].Value()
	}
	return out
}

// SetValue sets the input for field; used to pre-fill and in tests
func (f *MovieForm) SetValue(field domain.Field, value string) {
	for i, rf := range domain.RecordFields {
		if rf == field {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

// Changed returns the fields whose input differs from the movie being edited
func (f MovieForm) Changed() map[domain.Field]string {
	changed := make(map[domain.Field]string)
	for i, field := range domain.RecordFields {
		v := strings.TrimSpace(f.inputs[i].Value())
		if v != FormatField(f.original, field) {
			changed[field] = v
		}
	}
	return changed
}

// Update handles keys. It returns submitted=true only once every field
// passes validation; otherwise the first failing field is focused and its
// reason shown.
func (f MovieForm) Update(msg tea.Msg) (MovieForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.inputs))
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return f, nil, false
		case "enter", "ctrl+s":
			if idx, reason := f.firstInvalid(); idx >= 0 {
				f.err = reason
				f.setFocus(idx)
				return f, nil, false
			}
			f.err = ""
			return f, nil, true
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f MovieForm) firstInvalid() (int, string) {
	for i, field := range domain.RecordFields {
		if _, err := validate.Field(field, f.inputs[i].Value()); err != nil {
			return i, domain.Reason(err)
		}
	}
	return -1, ""
}

func (f *MovieForm) setFocus(idx int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = idx
	f.inputs[idx].Focus()
}

// View renders the form
func (f MovieForm) View() string {
	if !f.visible {
		return ""
	}

	title := "Add movie"
	if f.editing {
		title = fmt.Sprintf("Edit %q", f.original.Title)
	}

	rows := []string{styles.ModalTitleStyle.Render(title)}
	for i, field := range domain.RecordFields {
		label := styles.LabelStyle
		if i == f.focus {
			label = styles.FocusedLabelStyle
		}
		rows = append(rows, label.Render(field.Label())+f.inputs[i].View())
	}

	rows = append(rows, "")
	if f.err != "" {
		rows = append(rows, styles.ErrorStyle.Render(f.err))
	} else {
		rows = append(rows, styles.HelpKeyStyle.Render("tab")+styles.HelpDescStyle.Render(" next  ")+
			styles.HelpKeyStyle.Render("enter")+styles.HelpDescStyle.Render(" save  ")+
			styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" cancel"))
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// FormatField renders a field of m the way the form and validators expect it
func FormatField(m domain.Movie, field domain.Field) string {
	switch field {
	case domain.FieldTitle:
		return m.Title
	case domain.FieldReleaseYear:
		if m.ReleaseYear == 0 {
			return ""
		}
		return strconv.Itoa(m.ReleaseYear)
	case domain.FieldGenre:
		return m.Genre
	case domain.FieldDirector:
		return m.Director
	case domain.FieldRating:
		return strconv.FormatFloat(m.Rating, 'f', -1, 64)
	case domain.FieldWatched:
		return strconv.FormatBool(m.Watched)
	}
	return ""
}
