package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies service failures so the HTTP layer can map them to a status
// without inspecting message text.
type Kind int

const (
	KindInvalidArgument Kind = iota
	KindNotFound
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func invalidArgument(msg string) *Error { return &Error{Kind: KindInvalidArgument, Message: msg} }
func notFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }

func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, defaulting to KindInternal for anything that
// did not originate in this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// isUniqueViolation detects a unique-constraint insert failure. gorm translates
// these to ErrDuplicatedKey when the dialector supports it; the pgconn check
// covers raw postgres errors that escape translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
