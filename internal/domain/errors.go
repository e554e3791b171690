package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrConnection indicates the database file is missing, unreadable or rejected
	ErrConnection = errors.New("cannot connect to database")

	// ErrSchema indicates the database lacks the Movies table
	ErrSchema = errors.New("database is missing the required Movies table")

	// ErrValidation indicates a field value failed its rule
	ErrValidation = errors.New("invalid field value")

	// ErrDuplicate indicates a movie with the same title already exists
	ErrDuplicate = errors.New("movie already exists in the collection")

	// ErrNotFound indicates no movie has the requested title
	ErrNotFound = errors.New("movie not found")

	// ErrWrite indicates a statement that modifies the store failed
	ErrWrite = errors.New("database write failed")

	// ErrRead indicates a query against the store failed
	ErrRead = errors.New("database read failed")

	// ErrUnknownField indicates a field name that is not part of the schema
	ErrUnknownField = errors.New("unknown field")
)

// Constraint names the specific rule a value broke
type Constraint string

const (
	ConstraintTooShort   Constraint = "too_short"
	ConstraintTooLong    Constraint = "too_long"
	ConstraintCharset    Constraint = "charset"
	ConstraintOutOfRange Constraint = "out_of_range"
	ConstraintUnparsable Constraint = "unparsable"
	ConstraintNotInSet   Constraint = "not_in_set"
)

// ValidationError reports which constraint a field value failed.
// Reason is suitable for showing to the user as-is.
type ValidationError struct {
	Field      Field
	Constraint Constraint
	Value      string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Reason extracts the user facing reason from err. Validation errors yield
// their Reason, everything else its message.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return err.Error()
}
