package models

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// DuplicateNameError is returned when a record of the same kind already
// uses the name, compared case-insensitively.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a %s with the name %q already exists", e.Entity, e.Name)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// translateWrite maps a store-level unique violation on a name column to
// DuplicateNameError and passes every other error through.
func translateWrite(err error, entity, name string) error {
	if err == nil {
		return nil
	}
	var dup *DuplicateNameError
	if errors.As(err, &dup) {
		return err
	}
	if isUniqueViolation(err) {
		return &DuplicateNameError{Entity: entity, Name: name}
	}
	return err
}
