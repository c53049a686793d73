package http

import (
	"context"

	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) FindAll(ctx context.Context) ([]dto.UserResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]dto.UserResponse)
	return res, args.Error(1)
}

func (m *mockUserService) FindByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.UserResponse)
	return res, args.Error(1)
}

func (m *mockUserService) Insert(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.UserResponse)
	return res, args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, id int64, req *dto.UserUpdateRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.UserResponse)
	return res, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) FindAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]dto.CategoryResponse)
	return res, args.Error(1)
}

func (m *mockCategoryService) FindByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.CategoryResponse)
	return res, args.Error(1)
}

func (m *mockCategoryService) Insert(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.CategoryResponse)
	return res, args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, id int64, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.CategoryResponse)
	return res, args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductService struct{ mock.Mock }

func (m *mockProductService) FindAll(ctx context.Context) ([]dto.ProductResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]dto.ProductResponse)
	return res, args.Error(1)
}

func (m *mockProductService) FindByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.ProductResponse)
	return res, args.Error(1)
}

func (m *mockProductService) Insert(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.ProductResponse)
	return res, args.Error(1)
}

func (m *mockProductService) Update(ctx context.Context, id int64, req *dto.ProductUpdateRequest) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.ProductResponse)
	return res, args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) FindAll(ctx context.Context) ([]dto.OrderResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]dto.OrderResponse)
	return res, args.Error(1)
}

func (m *mockOrderService) FindByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.OrderResponse)
	return res, args.Error(1)
}

func (m *mockOrderService) Insert(ctx context.Context, req *dto.OrderRequest) (*dto.OrderResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.OrderResponse)
	return res, args.Error(1)
}

func (m *mockOrderService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
