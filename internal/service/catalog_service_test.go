package service

import (
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

func (s *IntegrationTestSuite) TestCategory_UpdateReplacesName() {
	category := s.createCategory("Books")

	res, err := s.CategoryService.Update(s.Ctx, category.ID, &dto.CategoryRequest{Name: "Novels"})
	s.Require().NoError(err)
	s.Require().Equal("Novels", res.Name)

	_, err = s.CategoryService.Update(s.Ctx, 777, &dto.CategoryRequest{Name: "x"})
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *IntegrationTestSuite) TestCategory_Delete() {
	used := s.createCategory("Electronics")
	unused := s.createCategory("Garden")
	s.createProduct("Smart TV", "2190", used.ID)

	err := s.CategoryService.Delete(s.Ctx, used.ID)
	s.Require().ErrorIs(err, ErrDatabase)
	s.Require().Equal("Cannot delete: Category has associated records", err.Error())

	err = s.CategoryService.Delete(s.Ctx, 12345)
	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(12345), nf.ID)

	s.Require().NoError(s.CategoryService.Delete(s.Ctx, unused.ID))

	_, err = s.CategoryService.FindByID(s.Ctx, unused.ID)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *IntegrationTestSuite) TestProduct_InsertWithMissingCategory() {
	books := s.createCategory("Books")

	_, err := s.ProductService.Insert(s.Ctx, &dto.ProductRequest{
		Name:         "Macbook Pro",
		Description:  "desc",
		Price:        decimal.RequireFromString("1250"),
		CategoriesID: []int64{books.ID, 500, 600},
	})

	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(500), nf.ID)
	s.Require().Zero(s.countRows("products"))
}

func (s *IntegrationTestSuite) TestProduct_CategoryReplacementIsTotal() {
	a := s.createCategory("A")
	b := s.createCategory("B")
	c := s.createCategory("C")
	product := s.createProduct("PC Gamer", "1200", a.ID, b.ID)

	res, err := s.ProductService.Update(s.Ctx, product.ID, &dto.ProductUpdateRequest{CategoriesID: []int64{c.ID}})
	s.Require().NoError(err)
	s.Require().Equal([]dto.CategoryResponse{{ID: c.ID, Name: "C"}}, res.Categories)

	found, err := s.ProductService.FindByID(s.Ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Equal([]dto.CategoryResponse{{ID: c.ID, Name: "C"}}, found.Categories)
	s.Require().Equal("PC Gamer", found.Name)
	s.Require().True(found.Price.Equal(decimal.RequireFromString("1200")))
}

func (s *IntegrationTestSuite) TestProduct_PartialUpdate() {
	a := s.createCategory("A")
	product := s.createProduct("Rails for Dummies", "100.99", a.ID)

	res, err := s.ProductService.Update(s.Ctx, product.ID, &dto.ProductUpdateRequest{Price: ptr(decimal.RequireFromString("80"))})
	s.Require().NoError(err)
	s.Require().Equal("Rails for Dummies", res.Name)
	s.Require().Equal("Lorem ipsum dolor sit amet.", res.Description)
	s.Require().True(res.Price.Equal(decimal.RequireFromString("80")))
	s.Require().Equal([]dto.CategoryResponse{{ID: a.ID, Name: "A"}}, res.Categories)

	_, err = s.ProductService.Update(s.Ctx, product.ID, &dto.ProductUpdateRequest{
		Name:         ptr("Renamed"),
		Price:        ptr(decimal.RequireFromString("5")),
		CategoriesID: []int64{a.ID, 321},
	})
	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(321), nf.ID)

	unchanged, err := s.ProductService.FindByID(s.Ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Equal("Rails for Dummies", unchanged.Name)
	s.Require().True(unchanged.Price.Equal(decimal.RequireFromString("80")))
	s.Require().Equal([]dto.CategoryResponse{{ID: a.ID, Name: "A"}}, unchanged.Categories)

	_, err = s.ProductService.Update(s.Ctx, 999, &dto.ProductUpdateRequest{Name: ptr("x")})
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(999), nf.ID)
}

func (s *IntegrationTestSuite) TestProduct_FindAllMaterializesCategories() {
	a := s.createCategory("A")
	b := s.createCategory("B")
	s.createProduct("One", "1", a.ID, b.ID)
	s.createProduct("Two", "2", b.ID)

	products, err := s.ProductService.FindAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 2)
	s.Require().Len(products[0].Categories, 2)
	s.Require().Equal([]dto.CategoryResponse{{ID: b.ID, Name: "B"}}, products[1].Categories)
}

func (s *IntegrationTestSuite) TestProduct_CachedFindByID() {
	a := s.createCategory("A")
	product := s.createProduct("Cached", "10", a.ID)

	cached := NewCachedProductService(s.ProductService, s.RedisClient, 0, s.Logger)

	res, err := cached.FindByID(s.Ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Equal("Cached", res.Name)

	exists, err := s.RedisClient.Exists(s.Ctx, productKey(product.ID)).Result()
	s.Require().NoError(err)
	s.Require().Equal(int64(1), exists)

	_, err = s.DbPool.Exec(s.Ctx, `UPDATE products SET name = 'Changed behind cache' WHERE id = $1`, product.ID)
	s.Require().NoError(err)

	res, err = cached.FindByID(s.Ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Equal("Cached", res.Name)

	_, err = cached.Update(s.Ctx, product.ID, &dto.ProductUpdateRequest{Name: ptr("Renamed")})
	s.Require().NoError(err)

	res, err = cached.FindByID(s.Ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Equal("Renamed", res.Name)

	removed, err := cached.InvalidateAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(int64(1), removed)
}
