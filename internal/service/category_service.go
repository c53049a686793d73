package service

import (
	"context"
	"errors"

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

type CategoryService interface {
	FindAll(ctx context.Context) ([]dto.CategoryResponse, error)
	FindByID(ctx context.Context, id int64) (*dto.CategoryResponse, error)
	Insert(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id int64, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	pool         *pgxpool.Pool
	categoryRepo repository.CategoryRepository
	outboxRepo   worker.OutboxRepository
	logger       *zap.Logger
}

func NewCategoryService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	categoryRepo repository.CategoryRepository,
	outboxRepo worker.OutboxRepository,
) CategoryService {
	return &categoryService{
		pool:         pool,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		logger:       logger,
	}
}

func (s *categoryService) FindAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.CategoriesToResponse(categories), nil
}

func (s *categoryService) FindByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, s.pool, id)
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.CategoryToResponse(category)
	return &res, nil
}

func (s *categoryService) Insert(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := mapper.CategoryFromRequest(req)

	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if _, err := s.categoryRepo.Create(ctx, tx, category); err != nil {
			return err
		}

		return s.saveEvent(ctx, tx, category.ID, domain.EventCategoryCreated, category.Name)
	})
	if err != nil {
		return nil, s.translate(ctx, 0, err)
	}

	mylogger.Info(ctx, s.logger, "Category created", zap.Int64("category_id", category.ID))

	res := mapper.CategoryToResponse(category)
	return &res, nil
}

// Update replaces the category name as a whole.
func (s *categoryService) Update(ctx context.Context, id int64, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := mapper.CategoryFromRequest(req)
	category.ID = id

	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if err := s.categoryRepo.Update(ctx, tx, category); err != nil {
			return err
		}

		return s.saveEvent(ctx, tx, id, domain.EventCategoryUpdated, category.Name)
	})
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.CategoryToResponse(category)
	return &res, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if err := s.categoryRepo.DeleteByID(ctx, tx, id); err != nil {
			return err
		}

		return s.saveEvent(ctx, tx, id, domain.EventCategoryDeleted, "")
	})
	if err != nil {
		return s.translate(ctx, id, err)
	}

	mylogger.Info(ctx, s.logger, "Category deleted", zap.Int64("category_id", id))

	return nil
}

func (s *categoryService) saveEvent(ctx context.Context, tx pgx.Tx, id int64, eventType, name string) error {
	return saveEvent(ctx, tx, s.outboxRepo, domain.TopicCatalogEvents, "category", id, eventType, domain.CategoryEvent{
		CategoryID: id,
		Name:       name,
	})
}

func (s *categoryService) translate(ctx context.Context, id int64, err error) error {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		mylogger.Warn(ctx, s.logger, "Category not found", zap.Int64("category_id", id))
		return &NotFoundError{ID: id}
	case errors.Is(err, repository.ErrForeignKeyViolation):
		mylogger.Warn(ctx, s.logger, "Category is referenced by products", zap.Int64("category_id", id))
		return inUse("Category", err)
	}

	return storageError(err)
}
