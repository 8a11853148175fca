package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrUniqueViolation    = errors.New("unique violation")
	ErrDeadline           = errors.New("deadline exceeded")
	ErrCanceled           = errors.New("context canceled")
	ErrUnavailable        = errors.New("upstream unavailable")
	ErrInternal           = errors.New("internal error")
	ErrQueueEmpty         = errors.New("queue is empty")
)

// pgCodes maps SQLSTATE codes onto sentinels. Anything absent is internal.
var pgCodes = map[string]error{
	"23505": ErrUniqueViolation, // unique_violation
	"23503": ErrInvalidInput,    // foreign_key_violation
	"23514": ErrInvalidInput,    // check_violation
	"22P02": ErrInvalidInput,    // invalid_text_representation
	"57014": ErrDeadline,        // query_canceled (statement_timeout)
}

func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// WrapError annotates a storage error with op and reduces it to one of the
// package sentinels so callers never depend on driver types.
func WrapError(_ context.Context, op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(op, ErrDeadline)
	case errors.Is(err, context.Canceled):
		return Wrap(op, ErrCanceled)
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(op, ErrNotFound)
	case errors.As(err, &pgErr):
		if sentinel, ok := pgCodes[pgErr.Code]; ok {
			return Wrap(op, sentinel)
		}
		return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
	default:
		return Wrap(op, ErrInternal)
	}
}
