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

type CategoryRepository interface {
	Create(ctx context.Context, tx pgx.Tx, category *domain.Category) (int64, error)
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Category, error)
	// GetByIDs returns the categories that exist among ids, ordered by id.
	GetByIDs(ctx context.Context, q Querier, ids []int64) ([]domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, tx pgx.Tx, category *domain.Category) error
	DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error
}

type categoryRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewCategoryRepository(pool *pgxpool.Pool, logger *zap.Logger) CategoryRepository {
	return &categoryRepo{
		pool:   pool,
		tracer: otel.Tracer("internal/repository/category"),
		logger: logger,
	}
}

func (r *categoryRepo) Create(ctx context.Context, tx pgx.Tx, category *domain.Category) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("name", category.Name))

	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id
	`

	if err := tx.QueryRow(ctx, query, category.Name).Scan(&category.ID); err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error creating category", zap.Error(err))

		return 0, fmt.Errorf("error creating category: %w", classify(err))
	}

	return category.ID, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, q Querier, id int64) (*domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.GetByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	var c domain.Category
	if err := q.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}

		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error getting category", zap.Int64("id", id), zap.Error(err))

		return nil, fmt.Errorf("error getting category %d: %w", id, err)
	}

	return &c, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, q Querier, ids []int64) ([]domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.GetByIDs")
	defer span.End()

	span.SetAttributes(attribute.Int64Slice("ids", ids))

	rows, err := q.Query(ctx, `SELECT id, name FROM categories WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error getting categories", zap.Int64s("ids", ids), zap.Error(err))

		return nil, fmt.Errorf("error getting categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Category])
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error scanning categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.List")
	defer span.End()

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error listing categories", zap.Error(err))

		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[domain.Category])
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error scanning categories: %w", err)
	}

	span.SetAttributes(attribute.Int("result_count", len(categories)))

	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, tx pgx.Tx, category *domain.Category) error {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", category.ID))

	commandTag, err := tx.Exec(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, category.Name, category.ID)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error updating category", zap.Int64("id", category.ID), zap.Error(err))

		return fmt.Errorf("error updating category %d: %w", category.ID, classify(err))
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepo) DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error {
	ctx, span := r.tracer.Start(ctx, "CategoryRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	commandTag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		err = classify(err)

		if !errors.Is(err, ErrForeignKeyViolation) {
			mylogger.Error(ctx, r.logger, "Error deleting category", zap.Int64("id", id), zap.Error(err))
		}

		return fmt.Errorf("error deleting category %d: %w", id, err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
