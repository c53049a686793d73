package service

import (
	"context"
	"sync"
	"testing"

	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/repository"
	outboxRepository "github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/repository"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/worker"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/testsuite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordingProducer struct {
	mu       sync.Mutex
	messages map[string][]any
}

func (p *recordingProducer) ProduceMessage(_ context.Context, topic string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.messages == nil {
		p.messages = make(map[string][]any)
	}
	p.messages[topic] = append(p.messages[topic], message)

	return nil
}

func (p *recordingProducer) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.messages[topic])
}

type IntegrationTestSuite struct {
	testsuite.BaseSuite

	UserService     UserService
	CategoryService CategoryService
	ProductService  ProductService
	OrderService    OrderService
	OutboxRepo      worker.OutboxRepository
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.BaseSuite.SetupInfrastructure("../../migrations", testsuite.WithRedis())
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.BaseSuite.TearDownInfrastructure()
}

func (s *IntegrationTestSuite) SetupTest() {
	s.TruncateTables("order_items", "orders", "product_categories", "products", "categories", "users", "outbox", "processed_events")
	s.Require().NoError(s.RedisClient.FlushAll(s.Ctx).Err())

	userRepo := repository.NewUserRepository(s.DbPool, s.Logger)
	categoryRepo := repository.NewCategoryRepository(s.DbPool, s.Logger)
	productRepo := repository.NewProductRepository(s.DbPool, s.Logger)
	orderRepo := repository.NewOrderRepository(s.DbPool, s.Logger)
	s.OutboxRepo = outboxRepository.NewOutboxRepository(s.DbPool, s.Logger)

	s.UserService = NewUserService(s.DbPool, s.Logger, userRepo, s.OutboxRepo)
	s.CategoryService = NewCategoryService(s.DbPool, s.Logger, categoryRepo, s.OutboxRepo)
	s.ProductService = NewProductService(s.DbPool, s.Logger, productRepo, categoryRepo, s.OutboxRepo)
	s.OrderService = NewOrderService(s.DbPool, s.Logger, orderRepo, userRepo, productRepo, s.OutboxRepo)
}

func (s *IntegrationTestSuite) createUser(email string) *dto.UserResponse {
	res, err := s.UserService.Insert(s.Ctx, &dto.UserRequest{
		Name:     "Maria Brown",
		Email:    email,
		Phone:    "988888888",
		Password: "123456",
	})
	s.Require().NoError(err)

	return res
}

func (s *IntegrationTestSuite) createCategory(name string) *dto.CategoryResponse {
	res, err := s.CategoryService.Insert(s.Ctx, &dto.CategoryRequest{Name: name})
	s.Require().NoError(err)

	return res
}

func (s *IntegrationTestSuite) createProduct(name, price string, categoryIDs ...int64) *dto.ProductResponse {
	res, err := s.ProductService.Insert(s.Ctx, &dto.ProductRequest{
		Name:         name,
		Description:  "Lorem ipsum dolor sit amet.",
		Price:        decimal.RequireFromString(price),
		CategoriesID: categoryIDs,
	})
	s.Require().NoError(err)

	return res
}

func (s *IntegrationTestSuite) countRows(table string) int {
	var n int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func ptr[T any](v T) *T { return &v }

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
