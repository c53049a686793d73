package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStorageError(t *testing.T) {
	rejected := fmt.Errorf("error creating product: %w: %w", repository.ErrInvalidValue, &pgconn.PgError{Code: "23514"})

	err := storageError(rejected)
	require.ErrorIs(t, err, ErrDatabase)
	require.Equal(t, msgInvalidValue, err.Error())

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)

	other := errors.New("connection reset")
	require.Same(t, other, storageError(other))
}

func TestProductTranslate_ForeignKeyOutsideDelete(t *testing.T) {
	svc := &productService{logger: zap.NewNop()}
	fk := fmt.Errorf("error linking categories to product 1: %w", repository.ErrForeignKeyViolation)

	err := svc.translate(context.Background(), 1, fk)

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	require.Equal(t, msgMissingCategory, dbErr.Msg)
	require.NotContains(t, dbErr.Msg, "Cannot delete")
}
