package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	ImgURL      *string            `json:"imgUrl"`
	Categories  []CategoryResponse `json:"categories"`
}

type OrderItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	SubTotal decimal.Decimal `json:"subTotal"`
}

type OrderResponse struct {
	ID     int64               `json:"id"`
	Moment time.Time           `json:"moment"`
	Status string              `json:"status"`
	Client UserResponse        `json:"client"`
	Items  []OrderItemResponse `json:"items"`
	Total  decimal.Decimal     `json:"total"`
}
