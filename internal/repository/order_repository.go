package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// OrderRepository is the only writer of order_items.
type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *domain.Order) (int64, error)
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error
}

type orderRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewOrderRepository(pool *pgxpool.Pool, logger *zap.Logger) OrderRepository {
	return &orderRepo{
		pool:   pool,
		tracer: otel.Tracer("internal/repository/order"),
		logger: logger,
	}
}

const orderDetailsQuery = `
	SELECT o.id, o.moment, o.status,
		u.id, u.name, u.email, u.phone, u.password, u.created_at, u.updated_at
	FROM orders o
	JOIN users u ON u.id = o.client_id
`

func (r *orderRepo) Create(ctx context.Context, tx pgx.Tx, order *domain.Order) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("client_id", order.Client.ID),
		attribute.Int("items", len(order.Items)),
	)

	query := `
		INSERT INTO orders (moment, status, client_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := tx.QueryRow(ctx, query, order.Moment, order.Status, order.Client.ID).Scan(&order.ID); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error creating order", zap.Error(err))

		return 0, fmt.Errorf("error creating order: %w", classify(err))
	}

	batch := &pgx.Batch{}
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
			order.ID, item.Product.ID, item.Quantity, item.Price,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range order.Items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()

			span.RecordError(err)
			mylogger.Error(ctx, r.logger, "Error creating order item", zap.Int64("order_id", order.ID), zap.Error(err))

			return 0, fmt.Errorf("error creating items of order %d: %w", order.ID, classify(err))
		}
	}
	if err := br.Close(); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("error closing order items batch: %w", err)
	}

	span.SetAttributes(attribute.Int64("order_id", order.ID))

	return order.ID, nil
}

func (r *orderRepo) GetByID(ctx context.Context, q Querier, id int64) (*domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.GetByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	order, err := scanOrder(q.QueryRow(ctx, orderDetailsQuery+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error getting order", zap.Int64("id", id), zap.Error(err))

		return nil, fmt.Errorf("error getting order %d: %w", id, err)
	}

	if err := loadItems(ctx, q, []*domain.Order{order}); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error loading order items", zap.Int64("id", id), zap.Error(err))

		return nil, err
	}

	return order, nil
}

func (r *orderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	rows, err := r.pool.Query(ctx, orderDetailsQuery+` ORDER BY o.id`)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error listing orders", zap.Error(err))

		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			span.RecordError(err)

			return nil, fmt.Errorf("error scanning order: %w", err)
		}

		orders = append(orders, o)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := loadItems(ctx, r.pool, orders); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error loading order items", zap.Error(err))

		return nil, err
	}

	span.SetAttributes(attribute.Int("result_count", len(orders)))

	return orders, nil
}

func (r *orderRepo) DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	commandTag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error deleting order", zap.Int64("id", id), zap.Error(err))

		return fmt.Errorf("error deleting order %d: %w", id, classify(err))
	}

	if commandTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	c := &o.Client

	err := row.Scan(
		&o.ID, &o.Moment, &o.Status,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Password, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Moment = o.Moment.UTC()
	o.Items = make([]domain.OrderItem, 0)

	return &o, nil
}

// loadItems fills the items of orders, with their products and categories, in two queries.
func loadItems(ctx context.Context, q Querier, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
		SELECT oi.order_id, oi.quantity, oi.price, ` + productColumns + `
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, p.id
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error loading order items: %w", err)
	}

	for rows.Next() {
		var item domain.OrderItem
		p := &item.Product

		err := rows.Scan(
			&item.OrderID, &item.Quantity, &item.Price,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImgURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			rows.Close()
			return fmt.Errorf("error scanning order item: %w", err)
		}

		p.Categories = make([]domain.Category, 0)

		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order items: %w", err)
	}

	var products []*domain.Product
	for _, o := range orders {
		for i := range o.Items {
			products = append(products, &o.Items[i].Product)
		}
	}

	return attachCategories(ctx, q, products)
}
