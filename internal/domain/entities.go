package domain

import (
	"fmt"
	"strings"
)

// Movie is one catalog entry. Title is the collection key.
type Movie struct {
	Title       string  `json:"title" yaml:"title" validate:"min=1,max=45"`
	ReleaseYear int     `json:"release_year" yaml:"release_year" validate:"gte=1900,lte=2025"`
	Genre       string  `json:"genre" yaml:"genre" validate:"genre"`
	Director    string  `json:"director" yaml:"director" validate:"min=2,max=25,personname"`
	Rating      float64 `json:"rating" yaml:"rating" validate:"gte=0,lte=100"`
	Watched     bool    `json:"watched" yaml:"watched"`
}

// WatchedLabel returns the display label for the watched flag
func (m Movie) WatchedLabel() string {
	if m.Watched {
		return "Watched"
	}
	return "Not Watched"
}

// String returns a one-line summary of the movie
func (m Movie) String() string {
	return fmt.Sprintf("%s - %s - %d - %s - %.1f - %s",
		m.Title, m.Genre, m.ReleaseYear, m.Director, m.Rating, m.WatchedLabel())
}

// Values returns the movie as a sparse column set for insertion.
func (m Movie) Values() Values {
	return Values{
		FieldTitle:       m.Title,
		FieldReleaseYear: m.ReleaseYear,
		FieldGenre:       m.Genre,
		FieldDirector:    m.Director,
		FieldRating:      m.Rating,
		FieldWatched:     BoolToStored(m.Watched),
	}
}

// Field identifies a column of the Movies table
type Field string

const (
	FieldID          Field = "id"
	FieldTitle       Field = "title"
	FieldReleaseYear Field = "release_year"
	FieldGenre       Field = "genre"
	FieldDirector    Field = "director"
	FieldRating      Field = "rating"
	FieldWatched     Field = "watched_status"
)

// RecordFields lists the user-editable fields in import/column order
var RecordFields = []Field{
	FieldTitle,
	FieldReleaseYear,
	FieldGenre,
	FieldDirector,
	FieldRating,
	FieldWatched,
}

// AllFields lists every column including the store identity
var AllFields = append([]Field{FieldID}, RecordFields...)

var fieldColumns = map[Field]string{
	FieldID:          "ID",
	FieldTitle:       "Title",
	FieldReleaseYear: "Release_Year",
	FieldGenre:       "Genre",
	FieldDirector:    "Director",
	FieldRating:      "Rating",
	FieldWatched:     "Watched_Status",
}

var fieldLabels = map[Field]string{
	FieldID:          "ID",
	FieldTitle:       "Title",
	FieldReleaseYear: "Release year",
	FieldGenre:       "Genre",
	FieldDirector:    "Director",
	FieldRating:      "Rating",
	FieldWatched:     "Watched",
}

// Names accepted from the console and form adapters
var fieldAliases = map[string]Field{
	"id":             FieldID,
	"title":          FieldTitle,
	"release_year":   FieldReleaseYear,
	"releaseyear":    FieldReleaseYear,
	"year":           FieldReleaseYear,
	"genre":          FieldGenre,
	"director":       FieldDirector,
	"rating":         FieldRating,
	"watched_status": FieldWatched,
	"watchedstatus":  FieldWatched,
	"watched":        FieldWatched,
}

// ParseField resolves a user supplied field name, ignoring case and
// treating spaces and dashes as underscores.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Column returns the column name as defined by the schema
func (f Field) Column() string {
	return fieldColumns[f]
}

// Label returns a human readable field name
func (f Field) Label() string {
	if l, ok := fieldLabels[f]; ok {
		return l
	}
	return string(f)
}

// Valid reports whether f names a known column
func (f Field) Valid() bool {
	_, ok := fieldColumns[f]
	return ok
}

// Genres is the fixed set of accepted genres, in display order
var Genres = []string{
	"Action", "Crime", "Drama", "Fantasy", "Horror", "Comedy", "Romance",
	"Science Fiction", "Sports", "Thriller", "Mystery", "War", "Western",
}

// BoolToStored converts a watched flag into its stored form (1/0).
func BoolToStored(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Values is a sparse set of column values; absent fields are left out of
// the statement rather than written as NULL.
type Values map[Field]any

// Fields returns the present fields in AllFields order
func (v Values) Fields() []Field {
	fields := make([]Field, 0, len(v))
	for _, f := range AllFields {
		if _, ok := v[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}
