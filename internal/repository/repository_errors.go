package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrUniqueViolation     = errors.New("unique violation")
	// ErrInvalidValue covers values the schema refuses: failed CHECKs, overlong strings, numeric overflow.
	ErrInvalidValue = errors.New("invalid value")
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeStringTooLong       = "22001"
	codeNumericOutOfRange   = "22003"
)

// classify maps integrity violations onto the package sentinels and keeps the driver error in the chain.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s: %w", ErrForeignKeyViolation, pgErr.ConstraintName, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s: %w", ErrUniqueViolation, pgErr.ConstraintName, err)
	case codeCheckViolation, codeStringTooLong, codeNumericOutOfRange:
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	return err
}
