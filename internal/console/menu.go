// Package console is the line-oriented menu front end. It owns all
// prompting and re-prompting; the library service only returns outcomes.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/library"
	"github.com/mmcdole/cinelog/internal/validate"
)

var menuItems = []string{
	"Add Movie",
	"Remove Movie",
	"Update Movie",
	"Display All Movies",
	"Calculate Average Rating",
	"Search Movies",
	"Exit",
}

const (
	optAdd = iota + 1
	optRemove
	optUpdate
	optDisplay
	optAverage
	optSearch
	optExit
)

// Menu runs the numbered console menu against a library service
type Menu struct {
	svc    *library.Service
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
	sortBy domain.Field
}

// New creates a menu reading answers from in and writing prompts to out
func New(svc *library.Service, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
		sortBy: domain.FieldTitle,
	}
}

// SetSort changes the field used by Display All Movies
func (m *Menu) SetSort(f domain.Field) {
	m.sortBy = f
}

// Run loops until the user exits or input ends
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.askChoice("Enter your option by the number associated: ", len(menuItems))
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case optAdd:
			err = m.add(ctx)
		case optRemove:
			err = m.remove(ctx)
		case optUpdate:
			err = m.update(ctx)
		case optDisplay:
			err = m.display()
		case optAverage:
			m.printf("Average rating: %.1f\n", m.svc.AverageRating())
		case optSearch:
			err = m.search()
		case optExit:
			m.printf("Goodbye.\n")
			return nil
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.printf("\nMovie Collection Menu:\n")
	for i, item := range menuItems {
		m.printf("%d. %s\n", i+1, item)
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// ask prints prompt and returns the next trimmed line
func (m *Menu) ask(prompt string) (string, error) {
	m.printf("%s", prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// askChoice re-prompts until the answer is a number in [1, n]
func (m *Menu) askChoice(prompt string, n int) (int, error) {
	for {
		answer, err := m.ask(prompt)
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(answer)
		if err == nil && choice >= 1 && choice <= n {
			return choice, nil
		}
		m.printf("Invalid option. Please enter a number between 1 and %d.\n", n)
	}
}

// askValid re-prompts until check accepts the answer
func askValid[T any](m *Menu, prompt string, check func(string) (T, error)) (T, error) {
	for {
		answer, err := m.ask(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := check(answer)
		if err == nil {
			return v, nil
		}
		m.printf("Error: %s\n", domain.Reason(err))
	}
}

func (m *Menu) add(ctx context.Context) error {
	m.printf("How would you like to add the movie?\n1. From a text file\n2. Manually\n")
	choice, err := m.askChoice("Enter option: ", 2)
	if err != nil {
		return err
	}
	if choice == 1 {
		return m.importFile(ctx)
	}

	var mv domain.Movie
	if mv.Title, err = askValid(m, "Enter movie title: ", validate.Title); err != nil {
		return err
	}
	if mv.ReleaseYear, err = askValid(m, "Enter release year: ", validate.Year); err != nil {
		return err
	}
	if mv.Genre, err = askValid(m, "Enter genre: ", validate.Genre); err != nil {
		return err
	}
	if mv.Director, err = askValid(m, "Enter director: ", validate.Director); err != nil {
		return err
	}
	if mv.Rating, err = askValid(m, "Enter rating (0-100): ", validate.Rating); err != nil {
		return err
	}
	if mv.Watched, err = askValid(m, "Watched? (true/false): ", validate.Watched); err != nil {
		return err
	}

	if err := m.svc.Add(ctx, mv); err != nil {
		m.printf("Error: %s\n", domain.Reason(err))
		return nil
	}
	m.printf("Added %q.\n", mv.Title)
	return nil
}

func (m *Menu) importFile(ctx context.Context) error {
	path, err := askValid(m, "Enter the full path of the movies text file: ", func(s string) (string, error) {
		if s == "" {
			return "", errors.New("file path cannot be empty")
		}
		return s, nil
	})
	if err != nil {
		return err
	}

	summary, err := m.svc.ImportFile(ctx, path)
	if err != nil {
		m.printf("Error: %s\n", domain.Reason(err))
		return nil
	}
	for _, s := range summary.Skipped {
		m.printf("Skipped line %d (%s): %s\n", s.Line, s.Reason, s.Text)
	}
	m.printf("Imported %d of %d lines.\n", summary.Accepted, summary.Lines)
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	title, err := m.ask("Enter title to remove: ")
	if err != nil {
		return err
	}
	if err := m.svc.Remove(ctx, title); err != nil {
		m.printf("Error: %s\n", domain.Reason(err))
		return nil
	}
	m.printf("Removed %q.\n", title)
	return nil
}

func (m *Menu) update(ctx context.Context) error {
	title, err := m.ask("Enter title of the movie to update: ")
	if err != nil {
		return err
	}
	if _, err := m.svc.Get(title); err != nil {
		m.printf("Error: %s\n", domain.Reason(err))
		return nil
	}

	name, err := m.ask("Enter field to update (title, release_year, genre, director, rating, watched_status): ")
	if err != nil {
		return err
	}
	field, err := domain.ParseField(name)
	if err != nil || field == domain.FieldID {
		m.printf("Error: Invalid field selected.\n")
		return nil
	}

	raw, err := askValid(m, fmt.Sprintf("Enter new %s: ", strings.ToLower(field.Label())), func(s string) (string, error) {
		_, err := validate.Field(field, s)
		return s, err
	})
	if err != nil {
		return err
	}

	if err := m.svc.UpdateField(ctx, title, field, raw); err != nil {
		m.printf("Error: %s\n", domain.Reason(err))
		return nil
	}
	m.printf("Updated %s of %q.\n", strings.ToLower(field.Label()), title)
	return nil
}

func (m *Menu) display() error {
	movies := m.svc.List(m.sortBy, false)
	if err := WriteMovies(m.out, movies); err != nil {
		return err
	}
	if len(movies) > 0 {
		return WriteSummary(m.out, m.svc.Count(), m.svc.WatchedCount(), m.svc.AverageRating())
	}
	return nil
}

func (m *Menu) search() error {
	query, err := m.ask("Enter search text: ")
	if err != nil {
		return err
	}
	results := m.svc.Search(query)
	if len(results) == 0 {
		m.printf("No matches for %q.\n", query)
		return nil
	}
	movies := make([]domain.Movie, len(results))
	for i, r := range results {
		movies[i] = r.Movie
	}
	return WriteMovies(m.out, movies)
}
