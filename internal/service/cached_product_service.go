package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.uber.org/zap"
)

const productKeyPrefix = "product:"

// CachedProductService keeps FindByID results in redis.
// Cache errors are logged and never fail a request.
type CachedProductService struct {
	next        ProductService
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewCachedProductService(next ProductService, redisClient *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *CachedProductService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	return &CachedProductService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

func (s *CachedProductService) FindAll(ctx context.Context) ([]dto.ProductResponse, error) {
	return s.next.FindAll(ctx)
}

func (s *CachedProductService) FindByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	key := productKey(id)

	val, err := s.redisClient.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product dto.ProductResponse
		if err := json.Unmarshal(val, &product); err == nil {
			return &product, nil
		}
		mylogger.Warn(ctx, s.logger, "Corrupted product cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		mylogger.Warn(ctx, s.logger, "Product cache read failed", zap.String("key", key), zap.Error(err))
	}

	product, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(product)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Failed to encode product for cache", zap.Int64("product_id", id), zap.Error(err))
		return product, nil
	}

	if err := s.redisClient.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Product cache write failed", zap.String("key", key), zap.Error(err))
	}

	return product, nil
}

func (s *CachedProductService) Insert(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	return s.next.Insert(ctx, req)
}

func (s *CachedProductService) Update(ctx context.Context, id int64, req *dto.ProductUpdateRequest) (*dto.ProductResponse, error) {
	res, err := s.next.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.evict(ctx, id)
	return res, nil
}

func (s *CachedProductService) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}

	s.evict(ctx, id)
	return nil
}

func (s *CachedProductService) evict(ctx context.Context, id int64) {
	if err := s.redisClient.Del(ctx, productKey(id)).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Product cache eviction failed", zap.Int64("product_id", id), zap.Error(err))
	}
}

// InvalidateAll drops every cached product and returns how many keys were removed.
func (s *CachedProductService) InvalidateAll(ctx context.Context) (int64, error) {
	var removed int64

	iter := s.redisClient.Scan(ctx, 0, productKeyPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		n, err := s.redisClient.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}

		removed += n
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return removed, fmt.Errorf("failed to delete product keys: %w", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan product keys: %w", err)
	}

	if err := flush(); err != nil {
		return removed, fmt.Errorf("failed to delete product keys: %w", err)
	}

	return removed, nil
}
