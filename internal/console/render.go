package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/cinelog/internal/domain"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// WriteMovies renders movies as a bordered table
func WriteMovies(w io.Writer, movies []domain.Movie) error {
	if len(movies) == 0 {
		_, err := fmt.Fprintln(w, "No movies in the collection.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers("TITLE", "YEAR", "GENRE", "DIRECTOR", "RATING", "WATCHED")
	for _, m := range movies {
		t.Row(
			m.Title,
			strconv.Itoa(m.ReleaseYear),
			m.Genre,
			m.Director,
			strconv.FormatFloat(m.Rating, 'f', 1, 64),
			m.WatchedLabel(),
		)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// WriteSummary renders the collection totals line
func WriteSummary(w io.Writer, count, watched int, average float64) error {
	_, err := fmt.Fprintf(w, "%d movies, %d watched, average rating %.1f\n", count, watched, average)
	return err
}
