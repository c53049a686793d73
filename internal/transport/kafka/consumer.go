package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	outboxDomain "github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/utils"
	"go.uber.org/zap"
)

type ProductCache interface {
	InvalidateAll(ctx context.Context) (int64, error)
}

// CatalogConsumer drops cached products whenever a category changes,
// since cached products embed category names.
type CatalogConsumer struct {
	pool   *pgxpool.Pool
	cache  ProductCache
	logger *zap.Logger
}

func NewCatalogConsumer(pool *pgxpool.Pool, cache ProductCache, logger *zap.Logger) *CatalogConsumer {
	return &CatalogConsumer{
		pool:   pool,
		cache:  cache,
		logger: logger,
	}
}

func (c *CatalogConsumer) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var envelope outboxDomain.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		mylogger.Warn(ctx, c.logger, "Skipping malformed catalog event", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}

	switch envelope.Event {
	case domain.EventCategoryUpdated, domain.EventCategoryDeleted:
	default:
		return nil
	}

	if envelope.EventID == 0 {
		return c.invalidate(ctx, envelope.Event)
	}

	return utils.ProcessWithDeduplication(ctx, c.pool, c.logger, envelope.EventID, func(ctx context.Context) error {
		return c.invalidate(ctx, envelope.Event)
	})
}

func (c *CatalogConsumer) invalidate(ctx context.Context, event string) error {
	removed, err := c.cache.InvalidateAll(ctx)
	if err != nil {
		return fmt.Errorf("invalidate product cache: %w", err)
	}

	mylogger.Info(ctx, c.logger, "Product cache invalidated", zap.String("event", event), zap.Int64("removed", removed))

	return nil
}
