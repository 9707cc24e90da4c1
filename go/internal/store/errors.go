package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStore marks connection, query and unexpected result failures.
	ErrStore = errors.New("store error")
	// ErrConflict marks unique, foreign key and check constraint violations.
	ErrConflict = errors.New("constraint violation")
	// ErrNoFields is returned by ConditionalUpdate when no field survives filtering.
	ErrNoFields = errors.New("no fields to update")
)

// Postgres error codes we classify as conflicts
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// Error is a classified store failure. Kind is one of ErrStore or ErrConflict,
// Err is the underlying driver error.
type Error struct {
	Op         string
	Kind       error
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the classification and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// classify wraps a driver error into an *Error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation:
			return &Error{Op: op, Kind: ErrConflict, Constraint: pgErr.ConstraintName, Err: err}
		}
	}
	return &Error{Op: op, Kind: ErrStore, Err: err}
}

// IsForeignKeyViolation reports whether err was raised by a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
