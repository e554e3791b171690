// Package validate holds the field rules every write path runs before
// touching the store. The rules are pure: no I/O, no shared mutable state.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/cinelog/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Field limits
const (
	MinTitleLen    = 1
	MaxTitleLen    = 45
	MinYear        = 1900
	MaxYear        = 2025
	MinDirectorLen = 2
	MaxDirectorLen = 25
	MinRating      = 0
	MaxRating      = 100
)

var (
	validate = newValidator()

	// folded genre -> canonical spelling
	genreIndex = buildGenreIndex()
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		_, ok := genreIndex[fold(fl.Field().String())]
		return ok
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return isPersonName(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func buildGenreIndex() map[string]string {
	idx := make(map[string]string, len(domain.Genres))
	for _, g := range domain.Genres {
		idx[fold(g)] = g
	}
	return idx
}

// fold case-folds s. A Caser carries state, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// isPersonName reports whether s consists of ASCII letters and spaces only
func isPersonName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != ' ' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// Title checks a title's length and returns it trimmed and NFC normalized.
func Title(raw string) (string, error) {
	title := norm.NFC.String(strings.TrimSpace(raw))
	if err := check(domain.FieldTitle, title, raw, "min=1,max=45"); err != nil {
		return "", err
	}
	return title, nil
}

// Year parses a release year and checks it lies in [1900, 2025].
func Year(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid(domain.FieldReleaseYear, domain.ConstraintUnparsable, raw)
	}
	if err := check(domain.FieldReleaseYear, year, raw, "gte=1900,lte=2025"); err != nil {
		return 0, err
	}
	return year, nil
}

// Genre matches raw against the genre set ignoring case and returns the
// canonical spelling.
func Genre(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if err := check(domain.FieldGenre, trimmed, raw, "genre"); err != nil {
		return "", err
	}
	return genreIndex[fold(trimmed)], nil
}

// Director checks a director name is 2-25 letters and spaces.
func Director(raw string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if err := check(domain.FieldDirector, name, raw, "min=2,max=25,personname"); err != nil {
		return "", err
	}
	return name, nil
}

// Rating parses a rating and checks it lies in [0, 100].
func Rating(raw string) (float64, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, invalid(domain.FieldRating, domain.ConstraintUnparsable, raw)
	}
	if err := check(domain.FieldRating, rating, raw, "gte=0,lte=100"); err != nil {
		return 0, err
	}
	return rating, nil
}

// Watched accepts the literal tokens true and false in any case.
func Watched(raw string) (bool, error) {
	token := fold(strings.TrimSpace(raw))
	if err := check(domain.FieldWatched, token, raw, "oneof=true false"); err != nil {
		return false, err
	}
	return token == "true", nil
}

// Field runs the rule for f and returns the parsed value
// (string, int, float64 or bool depending on the field).
func Field(f domain.Field, raw string) (any, error) {
	switch f {
	case domain.FieldTitle:
		return Title(raw)
	case domain.FieldReleaseYear:
		return Year(raw)
	case domain.FieldGenre:
		return Genre(raw)
	case domain.FieldDirector:
		return Director(raw)
	case domain.FieldRating:
		return Rating(raw)
	case domain.FieldWatched:
		return Watched(raw)
	default:
		return nil, fmt.Errorf("%w: %q cannot be edited", domain.ErrUnknownField, f)
	}
}

// Record validates six raw values in import order (title, year, genre,
// director, rating, watched) and stops at the first failure.
func Record(raw []string) (domain.Movie, error) {
	if len(raw) != len(domain.RecordFields) {
		return domain.Movie{}, fmt.Errorf("%w: expected %d fields, got %d",
			domain.ErrValidation, len(domain.RecordFields), len(raw))
	}

	var (
		m   domain.Movie
		err error
	)
	if m.Title, err = Title(raw[0]); err != nil {
		return domain.Movie{}, err
	}
	if m.ReleaseYear, err = Year(raw[1]); err != nil {
		return domain.Movie{}, err
	}
	if m.Genre, err = Genre(raw[2]); err != nil {
		return domain.Movie{}, err
	}
	if m.Director, err = Director(raw[3]); err != nil {
		return domain.Movie{}, err
	}
	if m.Rating, err = Rating(raw[4]); err != nil {
		return domain.Movie{}, err
	}
	if m.Watched, err = Watched(raw[5]); err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}

// structFields maps Movie struct field names to domain fields
var structFields = map[string]domain.Field{
	"Title":       domain.FieldTitle,
	"ReleaseYear": domain.FieldReleaseYear,
	"Genre":       domain.FieldGenre,
	"Director":    domain.FieldDirector,
	"Rating":      domain.FieldRating,
	"Watched":     domain.FieldWatched,
}

// Movie normalizes an already typed movie (trimmed title and director,
// canonical genre) and checks it against the same rules.
func Movie(m domain.Movie) (domain.Movie, error) {
	m.Title = norm.NFC.String(strings.TrimSpace(m.Title))
	m.Director = norm.NFC.String(strings.TrimSpace(m.Director))
	m.Genre = strings.TrimSpace(m.Genre)

	err := validate.Struct(m)
	if err == nil {
		m.Genre = genreIndex[fold(m.Genre)]
		return m, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Movie{}, invalid(structFields[fe.StructField()], constraintFor(fe.Tag()), fmt.Sprint(fe.Value()))
	}
	return domain.Movie{}, err
}

func check(field domain.Field, value any, raw, tags string) error {
	err := validate.Var(value, tags)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalid(field, constraintFor(verrs[0].Tag()), raw)
	}
	return invalid(field, domain.ConstraintUnparsable, raw)
}

func constraintFor(tag string) domain.Constraint {
	switch tag {
	case "min":
		return domain.ConstraintTooShort
	case "max":
		return domain.ConstraintTooLong
	case "gte", "lte":
		return domain.ConstraintOutOfRange
	case "personname":
		return domain.ConstraintCharset
	case "genre", "oneof":
		return domain.ConstraintNotInSet
	default:
		return domain.ConstraintUnparsable
	}
}

func invalid(field domain.Field, c domain.Constraint, raw string) error {
	return &domain.ValidationError{
		Field:      field,
		Constraint: c,
		Value:      raw,
		Reason:     reason(field, c),
	}
}
