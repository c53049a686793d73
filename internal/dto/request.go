package dto

import "github.com/shopspring/decimal"

type CategoryRequest struct {
	Name string `json:"name" validate:"notblank,max=255"`
}

type UserRequest struct {
	Name     string `json:"name" validate:"notblank,max=255"`
	Email    string `json:"email" validate:"notblank,email,max=255"`
	Phone    string `json:"phone" validate:"notblank,max=50"`
	Password string `json:"password" validate:"notblank,max=72"`
}

// UserUpdateRequest fields left nil or blank keep their stored value.
type UserUpdateRequest struct {
	Name  *string `json:"name" validate:"omitnil,max=255"`
	Email *string `json:"email" validate:"omitnil,email,max=255"`
	Phone *string `json:"phone" validate:"omitnil,max=50"`
}

func (r *UserUpdateRequest) OptionalFields() []any {
	return []any{r.Name, r.Email, r.Phone}
}

type ProductRequest struct {
	Name         string          `json:"name" validate:"notblank,max=255"`
	Description  string          `json:"description" validate:"notblank"`
	Price        decimal.Decimal `json:"price" validate:"required,gt=0"`
	ImgURL       *string         `json:"imgUrl" validate:"omitnil,max=2048"`
	CategoriesID []int64         `json:"categoriesId" validate:"required,min=1,dive,gt=0"`
}

// ProductUpdateRequest fields left nil or blank keep their stored value.
type ProductUpdateRequest struct {
	Name         *string          `json:"name" validate:"omitnil,max=255"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price" validate:"omitnil,gt=0"`
	ImgURL       *string          `json:"imgUrl" validate:"omitnil,max=2048"`
	CategoriesID []int64          `json:"categoriesId" validate:"omitempty,dive,gt=0"`
}

func (r *ProductUpdateRequest) OptionalFields() []any {
	return []any{r.Name, r.Description, r.Price, r.ImgURL, r.CategoriesID}
}

type OrderRequest struct {
	ClientID int64              `json:"clientId" validate:"gt=0"`
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,unique=ProductID,dive"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity" validate:"gt=0,max=1000000"`
}
