package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAnyFieldSet(t *testing.T) {
	tests := []struct {
		name string
		req  PartialUpdate
		want bool
	}{
		{"nil request", nil, true},
		{"typed nil request", (*UserUpdateRequest)(nil), true},
		{"all fields nil", &UserUpdateRequest{}, false},
		{"email only", &UserUpdateRequest{Email: ptr("a@b.com")}, true},
		{"blank name only", &UserUpdateRequest{Name: ptr("  ")}, false},
		{"empty category list", &ProductUpdateRequest{CategoriesID: []int64{}}, false},
		{"category list", &ProductUpdateRequest{CategoriesID: []int64{1}}, true},
		{"price only", &ProductUpdateRequest{Price: ptr(decimal.NewFromInt(3))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnyFieldSet(tt.req))
		})
	}
}

func TestValidate_UserUpdate(t *testing.T) {
	err := Validate(&UserUpdateRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 1)
	require.Equal(t, MsgNoFieldProvided, vErr.Violations[0].Message)

	require.NoError(t, Validate(&UserUpdateRequest{Email: ptr("a@b.com")}))

	err = Validate(&UserUpdateRequest{Name: ptr("  ")})
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []Violation{{Message: MsgNoFieldProvided}}, vErr.Violations)

	require.NoError(t, Validate(&UserUpdateRequest{Name: ptr("  "), Email: ptr("b@x.com")}))

	err = Validate(&UserUpdateRequest{Email: ptr("not-an-email")})
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []Violation{{Field: "email", Message: "Invalid email format"}}, vErr.Violations)
}

func TestValidate_Category(t *testing.T) {
	err := Validate(&CategoryRequest{Name: " "})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []Violation{{Field: "name", Message: "Name cannot be empty"}}, vErr.Violations)

	require.NoError(t, Validate(&CategoryRequest{Name: "Books"}))
}

func TestValidate_User(t *testing.T) {
	err := Validate(&UserRequest{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.ElementsMatch(t, []Violation{
		{Field: "name", Message: "Name cannot be empty"},
		{Field: "email", Message: "E-mail cannot be empty"},
		{Field: "phone", Message: "Phone cannot be empty"},
		{Field: "password", Message: "Password cannot be empty"},
	}, vErr.Violations)

	require.NoError(t, Validate(&UserRequest{
		Name:     "Maria Brown",
		Email:    "maria@gmail.com",
		Phone:    "988888888",
		Password: "123456",
	}))
}

func TestValidate_Product(t *testing.T) {
	valid := ProductRequest{
		Name:         "Smart TV",
		Description:  "Nulla eu imperdiet purus.",
		Price:        decimal.RequireFromString("2190.00"),
		CategoriesID: []int64{1},
	}
	require.NoError(t, Validate(&valid))

	missingPrice := valid
	missingPrice.Price = decimal.Zero
	assertViolation(t, Validate(&missingPrice), "price", "Price cannot be empty")

	negative := valid
	negative.Price = decimal.RequireFromString("-1")
	assertViolation(t, Validate(&negative), "price", "Price must be positive")

	noCategories := valid
	noCategories.CategoriesID = nil
	assertViolation(t, Validate(&noCategories), "categoriesId", "At least one category is required")

	badCategory := valid
	badCategory.CategoriesID = []int64{1, 0}
	assertViolation(t, Validate(&badCategory), "categoriesId[1]", "CategoriesId must be greater than 0")
}

func TestValidate_ProductUpdate(t *testing.T) {
	require.ErrorIs(t, Validate(&ProductUpdateRequest{}), ErrInvalidInput)
	require.NoError(t, Validate(&ProductUpdateRequest{Price: ptr(decimal.RequireFromString("9.99"))}))

	assertViolation(t, Validate(&ProductUpdateRequest{Price: ptr(decimal.Zero)}), "price", "Price must be positive")
	assertViolation(t, Validate(&ProductUpdateRequest{Name: ptr("")}), "", MsgNoFieldProvided)
	assertViolation(t, Validate(&ProductUpdateRequest{Price: ptr(decimal.RequireFromString("10.555"))}), "price", "Price must have at most 2 decimal places")
	assertViolation(t, Validate(&ProductUpdateRequest{Price: ptr(decimal.RequireFromString("1e10"))}), "price", "Price must be less than 10000000000")
}

func TestValidate_PriceFitsStorage(t *testing.T) {
	base := ProductRequest{
		Name:         "Smart TV",
		Description:  "Nulla eu imperdiet purus.",
		CategoriesID: []int64{1},
	}

	tests := []struct {
		price string
		want  string
	}{
		{"0.001", "Price must have at most 2 decimal places"},
		{"10.555", "Price must have at most 2 decimal places"},
		{"1e12", "Price must be less than 10000000000"},
		{"10000000000", "Price must be less than 10000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			req := base
			req.Price = decimal.RequireFromString(tt.price)
			assertViolation(t, Validate(&req), "price", tt.want)
		})
	}

	for _, ok := range []string{"0.01", "10.5", "10.50", "9999999999.99"} {
		req := base
		req.Price = decimal.RequireFromString(ok)
		require.NoError(t, Validate(&req), ok)
	}
}

func TestValidate_LengthsFitStorage(t *testing.T) {
	long := strings.Repeat("a", 300)

	assertViolation(t, Validate(&CategoryRequest{Name: long}), "name", "Name must be at most 255 characters")
	assertViolation(t, Validate(&UserRequest{
		Name:     long,
		Email:    "maria@gmail.com",
		Phone:    "988888888",
		Password: "123456",
	}), "name", "Name must be at most 255 characters")
	assertViolation(t, Validate(&UserRequest{
		Name:     "Maria Brown",
		Email:    "maria@gmail.com",
		Phone:    strings.Repeat("9", 51),
		Password: strings.Repeat("p", 73),
	}), "password", "Password must be at most 72 characters")
	assertViolation(t, Validate(&UserUpdateRequest{Phone: ptr(strings.Repeat("9", 51))}), "phone", "Phone must be at most 50 characters")
	assertViolation(t, Validate(&ProductRequest{
		Name:         long,
		Description:  "desc",
		Price:        decimal.NewFromInt(1),
		CategoriesID: []int64{1},
	}), "name", "Name must be at most 255 characters")
}

func TestValidate_Order(t *testing.T) {
	require.NoError(t, Validate(&OrderRequest{
		ClientID: 1,
		Items:    []OrderItemRequest{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
	}))

	assertViolation(t, Validate(&OrderRequest{ClientID: 1}), "items", "At least one item is required")

	assertViolation(t, Validate(&OrderRequest{
		ClientID: 1,
		Items:    []OrderItemRequest{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 3}},
	}), "items", "Items must not repeat a product")

	assertViolation(t, Validate(&OrderRequest{
		ClientID: 1,
		Items:    []OrderItemRequest{{ProductID: 1, Quantity: 0}},
	}), "items[0].quantity", "Quantity must be greater than 0")

	assertViolation(t, Validate(&OrderRequest{
		ClientID: 1,
		Items:    []OrderItemRequest{{ProductID: 1, Quantity: 3_000_000_000}},
	}), "items[0].quantity", "Quantity must be at most 1000000")
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("id", "Id must be a positive integer")

	require.True(t, errors.Is(err, ErrInvalidInput))
	require.Equal(t, "Id must be a positive integer", err.Error())
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	body, err := json.Marshal(CategoryResponse{ID: 1, Name: "Books"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"name":"Books"}`, string(body))

	body, err = json.Marshal(ProductResponse{ID: 1, Price: decimal.RequireFromString("90.5")})
	require.NoError(t, err)
	require.Contains(t, string(body), `"price":90.5`)
}

func assertViolation(t *testing.T, err error, field, msg string) {
	t.Helper()

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Violations, Violation{Field: field, Message: msg})
}
