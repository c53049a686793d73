package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	outboxDomain "github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/worker"
	"go.uber.org/zap"
)

// inTx runs fn in a transaction that is committed only when fn succeeds.
func inTx(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		mylogger.Error(ctx, logger, "Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)

		if err := tx.Rollback(shutdownCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Warn(shutdownCtx, logger, "Failed to rollback transaction", zap.Error(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		mylogger.Error(ctx, logger, "Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func saveEvent(
	ctx context.Context,
	tx pgx.Tx,
	outboxRepo worker.OutboxRepository,
	topic, aggregateType string,
	aggregateID int64,
	eventType string,
	payload any,
) error {
	event, err := outboxDomain.NewEvent(topic, aggregateType, aggregateID, eventType, payload)
	if err != nil {
		return err
	}

	return outboxRepo.SaveOutboxEvent(ctx, tx, event)
}
