package service

import (
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"golang.org/x/crypto/bcrypt"
)

func (s *IntegrationTestSuite) TestUser_InsertHashesPassword() {
	res := s.createUser("maria@gmail.com")
	s.Require().NotZero(res.ID)

	var hash string
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT password FROM users WHERE id = $1`, res.ID).Scan(&hash))
	s.Require().NotEqual("123456", hash)
	s.Require().NoError(bcrypt.CompareHashAndPassword([]byte(hash), []byte("123456")))

	var events int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM outbox WHERE event_type = 'UserCreated'`).Scan(&events))
	s.Require().Equal(1, events)
}

func (s *IntegrationTestSuite) TestUser_DuplicateEmail() {
	s.createUser("maria@gmail.com")

	_, err := s.UserService.Insert(s.Ctx, &dto.UserRequest{
		Name:     "Other",
		Email:    "maria@gmail.com",
		Phone:    "1",
		Password: "x",
	})

	s.Require().ErrorIs(err, ErrDatabase)
	s.Require().Equal("Email already registered", err.Error())
	s.Require().Equal(1, s.countRows("users"))
}

func (s *IntegrationTestSuite) TestUser_PartialUpdateNeverClears() {
	created := s.createUser("maria@gmail.com")

	res, err := s.UserService.Update(s.Ctx, created.ID, &dto.UserUpdateRequest{Email: ptr("a@b.com")})
	s.Require().NoError(err)
	s.Require().Equal("Maria Brown", res.Name)
	s.Require().Equal("a@b.com", res.Email)
	s.Require().Equal("988888888", res.Phone)

	found, err := s.UserService.FindByID(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Require().Equal(*res, *found)
}

func (s *IntegrationTestSuite) TestUser_UpdateMissing() {
	_, err := s.UserService.Update(s.Ctx, 404, &dto.UserUpdateRequest{Name: ptr("x")})

	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(404), nf.ID)
}

func (s *IntegrationTestSuite) TestUser_DeleteReferencedByOrder() {
	user := s.createUser("maria@gmail.com")
	category := s.createCategory("Books")
	product := s.createProduct("The Lord of the Rings", "90.5", category.ID)

	_, err := s.OrderService.Insert(s.Ctx, &dto.OrderRequest{
		ClientID: user.ID,
		Items:    []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	s.Require().NoError(err)

	err = s.UserService.Delete(s.Ctx, user.ID)
	s.Require().ErrorIs(err, ErrDatabase)
	s.Require().Equal("Cannot delete: User has associated records", err.Error())

	err = s.UserService.Delete(s.Ctx, 999)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *IntegrationTestSuite) TestFindAll_EmptyStore() {
	users, err := s.UserService.FindAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().NotNil(users)
	s.Require().Empty(users)

	categories, err := s.CategoryService.FindAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().NotNil(categories)
	s.Require().Empty(categories)

	products, err := s.ProductService.FindAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().NotNil(products)
	s.Require().Empty(products)

	orders, err := s.OrderService.FindAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().NotNil(orders)
	s.Require().Empty(orders)
}
