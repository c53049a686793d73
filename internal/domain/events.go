package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicUserEvents    = "user_events"
	TopicCatalogEvents = "catalog_events"
	TopicOrderEvents   = "order_events"
)

const (
	EventUserCreated     = "UserCreated"
	EventUserUpdated     = "UserUpdated"
	EventUserDeleted     = "UserDeleted"
	EventCategoryCreated = "CategoryCreated"
	EventCategoryUpdated = "CategoryUpdated"
	EventCategoryDeleted = "CategoryDeleted"
	EventProductCreated  = "ProductCreated"
	EventProductUpdated  = "ProductUpdated"
	EventProductDeleted  = "ProductDeleted"
	EventOrderCreated    = "OrderCreated"
	EventOrderDeleted    = "OrderDeleted"
)

type UserEvent struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

type CategoryEvent struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name,omitempty"`
}

type ProductEvent struct {
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryIDs []int64         `json:"category_ids,omitempty"`
}

type OrderCreatedEvent struct {
	OrderID  int64            `json:"order_id"`
	ClientID int64            `json:"client_id"`
	Moment   time.Time        `json:"moment"`
	Total    decimal.Decimal  `json:"total"`
	Items    []OrderItemEvent `json:"items"`
}

type OrderItemEvent struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderDeletedEvent struct {
	OrderID int64 `json:"order_id"`
}
