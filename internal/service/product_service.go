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

type ProductService interface {
	FindAll(ctx context.Context) ([]dto.ProductResponse, error)
	FindByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	Insert(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id int64, req *dto.ProductUpdateRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	pool         *pgxpool.Pool
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	outboxRepo   worker.OutboxRepository
	logger       *zap.Logger
}

func NewProductService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	outboxRepo worker.OutboxRepository,
) ProductService {
	return &productService{
		pool:         pool,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		logger:       logger,
	}
}

func (s *productService) FindAll(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.ProductsToResponse(products), nil
}

func (s *productService) FindByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, s.pool, id)
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.ProductToResponse(product)
	return &res, nil
}

func (s *productService) Insert(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	product := mapper.ProductFromRequest(req)

	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		categories, err := s.resolveCategories(ctx, tx, req.CategoriesID)
		if err != nil {
			return err
		}
		product.Categories = categories

		if _, err := s.productRepo.Create(ctx, tx, product); err != nil {
			return err
		}

		return s.saveEvent(ctx, tx, product, domain.EventProductCreated)
	})
	if err != nil {
		return nil, s.translate(ctx, 0, err)
	}

	mylogger.Info(ctx, s.logger, "Product created", zap.Int64("product_id", product.ID))

	res := mapper.ProductToResponse(product)
	return &res, nil
}

// Update applies the fields present in req. A non-empty category list replaces the whole set.
func (s *productService) Update(ctx context.Context, id int64, req *dto.ProductUpdateRequest) (*dto.ProductResponse, error) {
	var product *domain.Product

	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		var err error
		product, err = s.productRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		var categories []domain.Category
		if len(req.CategoriesID) > 0 {
			categories, err = s.resolveCategories(ctx, tx, req.CategoriesID)
			if err != nil {
				return err
			}
		}

		mapper.ApplyProductUpdate(req, categories, product)

		if err := s.productRepo.Update(ctx, tx, product); err != nil {
			return err
		}

		return s.saveEvent(ctx, tx, product, domain.EventProductUpdated)
	})
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.ProductToResponse(product)
	return &res, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if err := s.productRepo.DeleteByID(ctx, tx, id); err != nil {
			return err
		}

		return s.saveEvent(ctx, tx, &domain.Product{ID: id}, domain.EventProductDeleted)
	})
	if errors.Is(err, repository.ErrForeignKeyViolation) {
		mylogger.Warn(ctx, s.logger, "Product is referenced by orders", zap.Int64("product_id", id))
		return inUse("Product", err)
	}
	if err != nil {
		return s.translate(ctx, id, err)
	}

	mylogger.Info(ctx, s.logger, "Product deleted", zap.Int64("product_id", id))

	return nil
}

// resolveCategories fails with NotFoundError for the first id that does not exist.
func (s *productService) resolveCategories(ctx context.Context, tx pgx.Tx, ids []int64) ([]domain.Category, error) {
	categories, err := s.categoryRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]struct{}, len(categories))
	for _, c := range categories {
		found[c.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			mylogger.Warn(ctx, s.logger, "Category not found", zap.Int64("category_id", id))
			return nil, &NotFoundError{ID: id}
		}
	}

	return categories, nil
}

func (s *productService) saveEvent(ctx context.Context, tx pgx.Tx, p *domain.Product, eventType string) error {
	return saveEvent(ctx, tx, s.outboxRepo, domain.TopicCatalogEvents, "product", p.ID, eventType, domain.ProductEvent{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		CategoryIDs: p.CategoryIDs(),
	})
}

func (s *productService) translate(ctx context.Context, id int64, err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		mylogger.Warn(ctx, s.logger, "Product not found", zap.Int64("product_id", id))
		return &NotFoundError{ID: id}
	case errors.Is(err, repository.ErrForeignKeyViolation):
		// a category was removed between resolving and linking it
		mylogger.Warn(ctx, s.logger, "Product category link rejected", zap.Int64("product_id", id), zap.Error(err))
		return &DatabaseError{Msg: msgMissingCategory, Err: err}
	}

	return storageError(err)
}
