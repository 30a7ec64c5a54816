package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError is returned when typed input cannot be read as the value the
// field expects.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseID reads a required record ID.
func ParseID(field, input string) (int, error) {
	id, err := strconv.Atoi(input)
	if err != nil {
		return 0, &ParseError{Field: field, Input: input, Err: err}
	}
	return id, nil
}

// ParseOptionalInt returns nil for blank input.
func ParseOptionalInt(field, input string) (*int, error) {
	if input == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(input)
	if err != nil {
		return nil, &ParseError{Field: field, Input: input, Err: err}
	}
	return &v, nil
}

// ParseOptionalDecimal returns nil for blank input. A leading "$" is
// accepted.
func ParseOptionalDecimal(field, input string) (*decimal.Decimal, error) {
	if input == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(input, "$"))
	if err != nil {
		return nil, &ParseError{Field: field, Input: input, Err: err}
	}
	return &d, nil
}

// ParseYesNo reports whether input is an affirmative answer.
func ParseYesNo(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}
