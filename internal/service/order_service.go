package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/mapper"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/repository"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/worker"
	"go.uber.org/zap"
)

type OrderService interface {
	FindAll(ctx context.Context) ([]dto.OrderResponse, error)
	FindByID(ctx context.Context, id int64) (*dto.OrderResponse, error)
	Insert(ctx context.Context, req *dto.OrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id int64) error
}

type orderService struct {
	pool        *pgxpool.Pool
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	outboxRepo  worker.OutboxRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	outboxRepo worker.OutboxRepository,
) OrderService {
	return &orderService{
		pool:        pool,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *orderService) FindAll(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.OrdersToResponse(orders), nil
}

func (s *orderService) FindByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, s.pool, id)
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.OrderToResponse(order)
	return &res, nil
}

// Insert places an order for req.ClientID. Items are priced from their products at this moment.
// Nothing is stored unless the client and every product exist.
func (s *orderService) Insert(ctx context.Context, req *dto.OrderRequest) (*dto.OrderResponse, error) {
	var order *domain.Order

	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		client, err := s.userRepo.GetByID(ctx, tx, req.ClientID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				mylogger.Warn(ctx, s.logger, "Order client not found", zap.Int64("client_id", req.ClientID))
				return &NotFoundError{ID: req.ClientID}
			}
			return err
		}

		lines, err := s.resolveLines(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		order = domain.NewOrder(*client, lines, s.now())

		if _, err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}

		return saveEvent(ctx, tx, s.outboxRepo, domain.TopicOrderEvents, "order", order.ID, domain.EventOrderCreated, mapper.OrderCreatedEvent(order))
	})
	if err != nil {
		return nil, s.translate(ctx, 0, err)
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("client_id", order.Client.ID),
		zap.String("total", order.Total().String()),
	)

	res := mapper.OrderToResponse(order)
	return &res, nil
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if err := s.orderRepo.DeleteByID(ctx, tx, id); err != nil {
			return err
		}

		return saveEvent(ctx, tx, s.outboxRepo, domain.TopicOrderEvents, "order", id, domain.EventOrderDeleted, domain.OrderDeletedEvent{OrderID: id})
	})
	if err != nil {
		return s.translate(ctx, id, err)
	}

	mylogger.Info(ctx, s.logger, "Order deleted", zap.Int64("order_id", id))

	return nil
}

// resolveLines stops at the first product that does not exist.
func (s *orderService) resolveLines(ctx context.Context, tx pgx.Tx, items []dto.OrderItemRequest) ([]domain.OrderLine, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			mylogger.Warn(ctx, s.logger, "Order product not found", zap.Int64("product_id", item.ProductID))
			return nil, &NotFoundError{ID: item.ProductID}
		}

		lines = append(lines, domain.OrderLine{Product: *product, Quantity: item.Quantity})
	}

	return lines, nil
}

func (s *orderService) translate(ctx context.Context, id int64, err error) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		mylogger.Warn(ctx, s.logger, "Order not found", zap.Int64("order_id", id))
		return &NotFoundError{ID: id}
	}

	return storageError(err)
}
