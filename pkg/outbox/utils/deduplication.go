package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	actionAttempts = 3
	retryDelay     = 500 * time.Millisecond
)

// ProcessWithDeduplication runs action at most once per eventID.
// The processed_events row and the action share a transaction, so a failed action lets the event be redelivered.
func ProcessWithDeduplication(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger *zap.Logger,
	eventID int64,
	action func(ctx context.Context) error,
) error {
	span := trace.SpanFromContext(ctx)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)

		err := tx.Rollback(shutdownCtx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Error(shutdownCtx, logger, "Error rolling back transaction", zap.Error(err))
		}
	}()

	query := `
		INSERT INTO processed_events (event_id)
		VALUES ($1)
	`

	_, err = tx.Exec(ctx, query, eventID)
	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == "23505" {
			mylogger.Info(ctx, logger, "Event already processed, skipping", zap.Int64("event_id", eventID))
			return nil
		}

		span.RecordError(err)
		return err
	}

	for i := 0; i < actionAttempts; i++ {
		err = action(ctx)
		if err == nil {
			break
		}

		if i < actionAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	if err != nil {
		mylogger.Error(ctx, logger, "Failed to process event after retries", zap.Int64("event_id", eventID), zap.Error(err))

		return fmt.Errorf("process event %d: %w", eventID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, logger, "Failed to commit transaction", zap.Error(err))

		return fmt.Errorf("commit processed event %d: %w", eventID, err)
	}

	return nil
}
