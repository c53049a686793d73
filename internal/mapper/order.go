package mapper

import (
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
)

func OrderToResponse(o *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, dto.OrderItemResponse{
			Product:  ProductToResponse(&item.Product),
			Quantity: item.Quantity,
			Price:    item.Price,
			SubTotal: item.SubTotal(),
		})
	}

	return dto.OrderResponse{
		ID:     o.ID,
		Moment: o.Moment,
		Status: string(o.Status),
		Client: UserToResponse(&o.Client),
		Items:  items,
		Total:  o.Total(),
	}
}

func OrdersToResponse(orders []*domain.Order) []dto.OrderResponse {
	res := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderToResponse(o))
	}

	return res
}

func OrderCreatedEvent(o *domain.Order) domain.OrderCreatedEvent {
	items := make([]domain.OrderItemEvent, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, domain.OrderItemEvent{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return domain.OrderCreatedEvent{
		OrderID:  o.ID,
		ClientID: o.Client.ID,
		Moment:   o.Moment,
		Total:    o.Total(),
		Items:    items,
	}
}
