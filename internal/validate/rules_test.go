package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constraintOf(t *testing.T, err error) domain.Constraint {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Constraint
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		fails domain.Constraint
	}{
		{name: "simple", input: "Inception", want: "Inception"},
		{name: "trimmed", input: "  Heat ", want: "Heat"},
		{name: "single char", input: "M", want: "M"},
		{name: "exactly 45", input: strings.Repeat("a", 45), want: strings.Repeat("a", 45)},
		{name: "empty", input: "", fails: domain.ConstraintTooShort},
		{name: "only spaces", input: "   ", fails: domain.ConstraintTooShort},
		{name: "46 chars", input: strings.Repeat("a", 46), fails: domain.ConstraintTooLong},
		{name: "multibyte counted as runes", input: strings.Repeat("é", 45), want: strings.Repeat("é", 45)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Title(tt.input)
			if tt.fails != "" {
				assert.Equal(t, tt.fails, constraintOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
		fails domain.Constraint
	}{
		{input: "2010", want: 2010},
		{input: "1900", want: 1900},
		{input: "2025", want: 2025},
		{input: " 1999 ", want: 1999},
		{input: "1899", fails: domain.ConstraintOutOfRange},
		{input: "1800", fails: domain.ConstraintOutOfRange},
		{input: "2026", fails: domain.ConstraintOutOfRange},
		{input: "65416515861", fails: domain.ConstraintOutOfRange},
		{input: "sdtrhbaerhgbdfrhghs", fails: domain.ConstraintUnparsable},
		{input: "]!@#$%^&/*-+", fails: domain.ConstraintUnparsable},
		{input: "2010.5", fails: domain.ConstraintUnparsable},
		{input: "", fails: domain.ConstraintUnparsable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Year(tt.input)
			if tt.fails != "" {
				assert.Equal(t, tt.fails, constraintOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenre(t *testing.T) {
	for _, g := range domain.Genres {
		got, err := Genre(strings.ToUpper(g))
		require.NoError(t, err, g)
		assert.Equal(t, g, got)
	}

	got, err := Genre("war")
	require.NoError(t, err)
	assert.Equal(t, "War", got)

	got, err = Genre(" science fiction ")
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", got)

	for _, bad := range []string{"dfhgasghbfdaba", "3425435243543", "]!@#$%^&/*-+", "", "SciFi"} {
		_, err := Genre(bad)
		assert.Equal(t, domain.ConstraintNotInSet, constraintOf(t, err), bad)
	}
}

func TestDirector(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fails domain.Constraint
	}{
		{name: "valid", input: "Christopher Nolan"},
		{name: "two letters", input: "Jo"},
		{name: "accented letters", input: "Pedro Almodóvar", fails: domain.ConstraintCharset},
		{name: "cyrillic", input: "Кубрик Стэнли", fails: domain.ConstraintCharset},
		{name: "digits", input: "123413434", fails: domain.ConstraintCharset},
		{name: "symbols", input: "!@#$%^&/*-+[[[]]]]<>?", fails: domain.ConstraintCharset},
		{name: "too short", input: "J", fails: domain.ConstraintTooShort},
		{name: "empty", input: "", fails: domain.ConstraintTooShort},
		{name: "too long", input: "sdejhvbjivbjriuevnjoakibnfjbnaejnbjrnajebnjkearfbnjkeabvnjkfdbnajkbngjkasfbkjarbnkjabfnaldfb", fails: domain.ConstraintTooLong},
		{name: "hyphen", input: "Jean-Luc Godard", fails: domain.ConstraintCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Director(tt.input)
			if tt.fails != "" {
				assert.Equal(t, tt.fails, constraintOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		fails domain.Constraint
	}{
		{input: "95.0", want: 95},
		{input: "0", want: 0},
		{input: "100", want: 100},
		{input: "55", want: 55},
		{input: "-100", fails: domain.ConstraintOutOfRange},
		{input: "200", fails: domain.ConstraintOutOfRange},
		{input: "100.01", fails: domain.ConstraintOutOfRange},
		{input: "zdfbsbzbzdfbdzfb", fails: domain.ConstraintUnparsable},
		{input: "]!@#$%^&/*-+", fails: domain.ConstraintUnparsable},
		{input: "NaN", fails: domain.ConstraintUnparsable},
		{input: "Inf", fails: domain.ConstraintUnparsable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Rating(tt.input)
			if tt.fails != "" {
				assert.Equal(t, tt.fails, constraintOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestWatched(t *testing.T) {
	for input, want := range map[string]bool{"true": true, "TRUE": true, " False ": false, "false": false} {
		got, err := Watched(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, bad := range []string{"sdfhaergergh", "3214532451324", "]!@#$%^&/*-+", "maybe", "1", "yes", ""} {
		_, err := Watched(bad)
		assert.Equal(t, domain.ConstraintNotInSet, constraintOf(t, err), bad)
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	_, err := Year("abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "release year must be a whole number", domain.Reason(err))
}

func TestField(t *testing.T) {
	v, err := Field(domain.FieldRating, "55")
	require.NoError(t, err)
	assert.Equal(t, 55.0, v)

	v, err = Field(domain.FieldWatched, "TRUE")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = Field(domain.FieldID, "3")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestRecord(t *testing.T) {
	m, err := Record(strings.Split("Inception,2010,Science Fiction,Christopher Nolan,95.0,true", ","))
	require.NoError(t, err)
	assert.Equal(t, domain.Movie{
		Title:       "Inception",
		ReleaseYear: 2010,
		Genre:       "Science Fiction",
		Director:    "Christopher Nolan",
		Rating:      95,
		Watched:     true,
	}, m)

	// First failing field wins
	_, err = Record([]string{"", "1800", "nope", "1", "500", "maybe"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.FieldTitle, ve.Field)

	_, err = Record([]string{"a", "b"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMovie(t *testing.T) {
	m, err := Movie(domain.Movie{
		Title:       " The Dark Knight ",
		ReleaseYear: 2008,
		Genre:       "action",
		Director:    "Christopher Nolan",
		Rating:      90,
		Watched:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "The Dark Knight", m.Title)
	assert.Equal(t, "Action", m.Genre)

	_, err = Movie(domain.Movie{Title: "Old", ReleaseYear: 1850, Genre: "Drama", Director: "Some One", Rating: 10})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.FieldReleaseYear, ve.Field)
	assert.Equal(t, domain.ConstraintOutOfRange, ve.Constraint)

	_, err = Movie(domain.Movie{Title: "Bad Director", ReleaseYear: 2000, Genre: "Drama", Director: "R2D2", Rating: 10})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.FieldDirector, ve.Field)
	assert.Equal(t, domain.ConstraintCharset, ve.Constraint)
}
