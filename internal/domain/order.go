package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusWaitingPayment OrderStatus = "WAITING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusWaitingPayment, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}

	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}

	return status, nil
}

type Order struct {
	ID     int64       `db:"id"`
	Moment time.Time   `db:"moment"`
	Status OrderStatus `db:"status"`
	Client User
	Items  []OrderItem
}

// OrderItem is identified by its order and product.
// Price is the product price captured when the order was placed.
type OrderItem struct {
	OrderID  int64           `db:"order_id"`
	Product  Product
	Quantity int             `db:"quantity"`
	Price    decimal.Decimal `db:"price"`
}

func (i OrderItem) SubTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.SubTotal())
	}

	return total
}

// NewOrder builds an order for client, pricing every item from its product at call time.
func NewOrder(client User, lines []OrderLine, now time.Time) *Order {
	order := &Order{
		Moment: now.UTC().Truncate(time.Microsecond),
		Status: OrderStatusWaitingPayment,
		Client: client,
		Items:  make([]OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		order.Items = append(order.Items, OrderItem{
			Product:  line.Product,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
	}

	return order
}

type OrderLine struct {
	Product  Product
	Quantity int
}
