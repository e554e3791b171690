package validate

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cinelog/internal/domain"
)

var genreList = strings.Join(domain.Genres, ", ")

var reasons = map[domain.Field]map[domain.Constraint]string{
	domain.FieldTitle: {
		domain.ConstraintTooShort: "title must contain at least 1 character",
		domain.ConstraintTooLong:  fmt.Sprintf("title exceeds %d characters", MaxTitleLen),
	},
	domain.FieldReleaseYear: {
		domain.ConstraintUnparsable: "release year must be a whole number",
		domain.ConstraintOutOfRange: fmt.Sprintf("release year must be between %d and %d", MinYear, MaxYear),
	},
	domain.FieldGenre: {
		domain.ConstraintNotInSet: "genre must be one of: " + genreList,
	},
	domain.FieldDirector: {
		domain.ConstraintTooShort: fmt.Sprintf("director name must be at least %d characters", MinDirectorLen),
		domain.ConstraintTooLong:  fmt.Sprintf("director name must be at most %d characters", MaxDirectorLen),
		domain.ConstraintCharset:  "director name must contain only letters and spaces",
	},
	domain.FieldRating: {
		domain.ConstraintUnparsable: "rating must be a number",
		domain.ConstraintOutOfRange: fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating),
	},
	domain.FieldWatched: {
		domain.ConstraintNotInSet: "watched status must be 'true' or 'false'",
	},
}

func reason(field domain.Field, c domain.Constraint) string {
	if msg, ok := reasons[field][c]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", strings.ToLower(field.Label()))
}
