package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/tui/styles"
)

// Inspector displays the details of the selected movie
type Inspector struct {
	movie    domain.Movie
	hasMovie bool
	width    int
	height   int
}

// NewInspector creates an empty inspector
func NewInspector() Inspector {
	return Inspector{}
}

// SetMovie sets the movie to display
func (i *Inspector) SetMovie(m domain.Movie) {
	i.movie = m
	i.hasMovie = true
}

// Clear removes the displayed movie
func (i *Inspector) Clear() {
	i.movie = domain.Movie{}
	i.hasMovie = false
}

// HasMovie returns true if there is a movie to display
func (i Inspector) HasMovie() bool {
	return i.hasMovie
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(i.width-3, 10)

	parts := []string{
		styles.AccentStyle.Render(styles.Truncate("Info", contentWidth)),
		"",
	}
	if i.hasMovie {
		parts = append(parts, renderMovieHeader(i.movie, contentWidth), "", renderMovieBody(i.movie, contentWidth))
	} else {
		parts = append(parts, styles.DimStyle.Render("No movie selected"))
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func renderMovieHeader(m domain.Movie, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	b.WriteString("\n")

	// Meta line: Year · Genre
	var meta []string
	if m.ReleaseYear > 0 {
		meta = append(meta, fmt.Sprintf("%d", m.ReleaseYear))
	}
	if m.Genre != "" {
		meta = append(meta, m.Genre)
	}
	b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
	b.WriteString("\n")

	ratingText := fmt.Sprintf("★ %.1f", m.Rating)
	var ratingStyle lipgloss.Style
	switch {
	case m.Rating >= 70:
		ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
	case m.Rating >= 50:
		ratingStyle = lipgloss.NewStyle().Foreground(styles.MarqueeGold)
	default:
		ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
	}

	status := styles.DimStyle.Render(styles.UnwatchedChar + " Unwatched")
	if m.Watched {
		status = styles.SuccessStyle.Render(styles.WatchedChar + " Watched")
	}
	b.WriteString(ratingStyle.Render(ratingText) + "   " + status)

	return b.String()
}

func renderMovieBody(m domain.Movie, width int) string {
	director := m.Director
	if director == "" {
		director = "unknown"
	}
	return styles.LabelStyle.Render("Director") +
		styles.SubtitleStyle.Render(styles.Truncate(director, max(width-14, 1)))
}
