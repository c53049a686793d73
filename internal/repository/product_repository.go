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

// ProductRepository always returns products with their full category set.
type ProductRepository interface {
	Create(ctx context.Context, tx pgx.Tx, product *domain.Product) (int64, error)
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Product, error)
	// GetByIDs returns the products that exist among ids, keyed by id.
	GetByIDs(ctx context.Context, q Querier, ids []int64) (map[int64]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, tx pgx.Tx, product *domain.Product) error
	DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error
}

type productRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewProductRepository(pool *pgxpool.Pool, logger *zap.Logger) ProductRepository {
	return &productRepo{
		pool:   pool,
		tracer: otel.Tracer("internal/repository/product"),
		logger: logger,
	}
}

const productColumns = `p.id, p.name, p.description, p.price, p.img_url, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImgURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	p.Categories = make([]domain.Category, 0)
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, tx pgx.Tx, product *domain.Product) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("name", product.Name))

	query := `
		INSERT INTO products (name, description, price, img_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query, product.Name, product.Description, product.Price, product.ImgURL).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error creating product", zap.Error(err))

		return 0, fmt.Errorf("error creating product: %w", classify(err))
	}

	if err := r.insertCategories(ctx, tx, product.ID, product.CategoryIDs()); err != nil {
		span.RecordError(err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("product_id", product.ID))

	return product.ID, nil
}

func (r *productRepo) GetByID(ctx context.Context, q Querier, id int64) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.GetByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	return r.getOne(ctx, span, q, query, id)
}

func (r *productRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.GetByIDForUpdate")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 FOR UPDATE`

	return r.getOne(ctx, span, tx, query, id)
}

func (r *productRepo) getOne(ctx context.Context, span trace.Span, q Querier, query string, id int64) (*domain.Product, error) {
	product, err := scanProduct(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error getting product", zap.Int64("id", id), zap.Error(err))

		return nil, fmt.Errorf("error getting product %d: %w", id, err)
	}

	if err := attachCategories(ctx, q, []*domain.Product{product}); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return product, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, q Querier, ids []int64) (map[int64]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.GetByIDs")
	defer span.End()

	span.SetAttributes(attribute.Int64Slice("ids", ids))

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = ANY($1) ORDER BY p.id`

	products, err := r.query(ctx, q, query, ids)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	res := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		res[p.ID] = p
	}

	return res, nil
}

func (r *productRepo) List(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.List")
	defer span.End()

	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.id`

	products, err := r.query(ctx, r.pool, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result_count", len(products)))

	return products, nil
}

func (r *productRepo) query(ctx context.Context, q Querier, query string, args ...any) ([]*domain.Product, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		mylogger.Error(ctx, r.logger, "Error querying products", zap.Error(err))
		return nil, fmt.Errorf("error querying products: %w", err)
	}

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning product: %w", err)
		}

		products = append(products, p)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := attachCategories(ctx, q, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepo) Update(ctx context.Context, tx pgx.Tx, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", product.ID))

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, img_url = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := tx.QueryRow(ctx, query, product.Name, product.Description, product.Price, product.ImgURL, product.ID).
		Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}

		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error updating product", zap.Int64("id", product.ID), zap.Error(err))

		return fmt.Errorf("error updating product %d: %w", product.ID, classify(err))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, product.ID); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error clearing product categories", zap.Int64("id", product.ID), zap.Error(err))

		return fmt.Errorf("error clearing categories of product %d: %w", product.ID, err)
	}

	return r.insertCategories(ctx, tx, product.ID, product.CategoryIDs())
}

func (r *productRepo) DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	commandTag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		err = classify(err)

		if !errors.Is(err, ErrForeignKeyViolation) {
			mylogger.Error(ctx, r.logger, "Error deleting product", zap.Int64("id", id), zap.Error(err))
		}

		return fmt.Errorf("error deleting product %d: %w", id, err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepo) insertCategories(ctx context.Context, tx pgx.Tx, productID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_categories (product_id, category_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`

	if _, err := tx.Exec(ctx, query, productID, categoryIDs); err != nil {
		mylogger.Error(ctx, r.logger, "Error linking product categories", zap.Int64("product_id", productID), zap.Error(err))

		return fmt.Errorf("error linking categories to product %d: %w", productID, classify(err))
	}

	return nil
}

// attachCategories loads the category sets of products with a single query.
// products may hold several copies of the same product.
func attachCategories(ctx context.Context, q Querier, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[int64][]*domain.Product, len(products))
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			ids = append(ids, p.ID)
		}
		byID[p.ID] = append(byID[p.ID], p)
	}

	query := `
		SELECT pc.product_id, c.id, c.name
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY pc.product_id, c.id
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error loading product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var c domain.Category
		if err := rows.Scan(&productID, &c.ID, &c.Name); err != nil {
			return fmt.Errorf("error scanning product category: %w", err)
		}

		for _, p := range byID[productID] {
			p.Categories = append(p.Categories, c)
		}
	}

	return rows.Err()
}
