package service

import (
	"time"

	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/worker"
	"github.com/shopspring/decimal"
)

func (s *IntegrationTestSuite) TestOrder_Insert() {
	user := s.createUser("maria@gmail.com")
	books := s.createCategory("Books")
	lotr := s.createProduct("The Lord of the Rings", "90.5", books.ID)
	rails := s.createProduct("Rails for Dummies", "100.99", books.ID)

	before := time.Now().UTC().Add(-time.Second)

	res, err := s.OrderService.Insert(s.Ctx, &dto.OrderRequest{
		ClientID: user.ID,
		Items: []dto.OrderItemRequest{
			{ProductID: lotr.ID, Quantity: 2},
			{ProductID: rails.ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)
	s.Require().NotZero(res.ID)
	s.Require().Equal(string(domain.OrderStatusWaitingPayment), res.Status)
	s.Require().Equal(user.ID, res.Client.ID)
	s.Require().True(res.Moment.After(before))
	s.Require().Len(res.Items, 2)
	s.Require().True(res.Total.Equal(decimal.RequireFromString("281.99")))

	found, err := s.OrderService.FindByID(s.Ctx, res.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Items, 2)
	s.Require().Equal(lotr.ID, found.Items[0].Product.ID)
	s.Require().Equal([]dto.CategoryResponse{{ID: books.ID, Name: "Books"}}, found.Items[0].Product.Categories)
	s.Require().True(found.Total.Equal(res.Total))
	s.Require().True(found.Moment.Equal(res.Moment))

	var events int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM outbox WHERE topic = 'order_events'`).Scan(&events))
	s.Require().Equal(1, events)
}

func (s *IntegrationTestSuite) TestOrder_InsertIsAtomic() {
	user := s.createUser("maria@gmail.com")
	books := s.createCategory("Books")
	lotr := s.createProduct("The Lord of the Rings", "90.5", books.ID)

	_, err := s.OrderService.Insert(s.Ctx, &dto.OrderRequest{
		ClientID: user.ID,
		Items: []dto.OrderItemRequest{
			{ProductID: lotr.ID, Quantity: 1},
			{ProductID: 99, Quantity: 1},
			{ProductID: 100, Quantity: 1},
		},
	})

	var nf *NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(99), nf.ID)
	s.Require().Zero(s.countRows("orders"))
	s.Require().Zero(s.countRows("order_items"))

	_, err = s.OrderService.Insert(s.Ctx, &dto.OrderRequest{
		ClientID: 555,
		Items:    []dto.OrderItemRequest{{ProductID: lotr.ID, Quantity: 1}},
	})
	s.Require().ErrorAs(err, &nf)
	s.Require().Equal(int64(555), nf.ID)
	s.Require().Zero(s.countRows("orders"))
}

func (s *IntegrationTestSuite) TestOrder_ItemPriceIsSnapshot() {
	user := s.createUser("maria@gmail.com")
	books := s.createCategory("Books")
	lotr := s.createProduct("The Lord of the Rings", "90.5", books.ID)

	order, err := s.OrderService.Insert(s.Ctx, &dto.OrderRequest{
		ClientID: user.ID,
		Items:    []dto.OrderItemRequest{{ProductID: lotr.ID, Quantity: 3}},
	})
	s.Require().NoError(err)

	_, err = s.ProductService.Update(s.Ctx, lotr.ID, &dto.ProductUpdateRequest{Price: ptr(decimal.RequireFromString("120"))})
	s.Require().NoError(err)

	orders, err := s.OrderService.FindAll(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Require().Equal(order.ID, orders[0].ID)

	item := orders[0].Items[0]
	s.Require().True(item.Price.Equal(decimal.RequireFromString("90.5")))
	s.Require().True(item.Product.Price.Equal(decimal.RequireFromString("120")))
	s.Require().True(item.SubTotal.Equal(decimal.RequireFromString("271.5")))
}

func (s *IntegrationTestSuite) TestOrder_DeleteCascadesItems() {
	user := s.createUser("maria@gmail.com")
	books := s.createCategory("Books")
	lotr := s.createProduct("The Lord of the Rings", "90.5", books.ID)

	order, err := s.OrderService.Insert(s.Ctx, &dto.OrderRequest{
		ClientID: user.ID,
		Items:    []dto.OrderItemRequest{{ProductID: lotr.ID, Quantity: 1}},
	})
	s.Require().NoError(err)

	err = s.ProductService.Delete(s.Ctx, lotr.ID)
	s.Require().ErrorIs(err, ErrDatabase)
	s.Require().Equal("Cannot delete: Product has associated records", err.Error())

	s.Require().NoError(s.OrderService.Delete(s.Ctx, order.ID))
	s.Require().Zero(s.countRows("order_items"))

	s.Require().ErrorIs(s.OrderService.Delete(s.Ctx, order.ID), ErrNotFound)
	s.Require().NoError(s.ProductService.Delete(s.Ctx, lotr.ID))
}

func (s *IntegrationTestSuite) TestOutbox_PublishesPendingEvents() {
	s.createCategory("Books")
	s.createUser("maria@gmail.com")

	producer := &recordingProducer{}
	processor := worker.NewOutboxProcessor(s.DbPool, s.OutboxRepo, producer, s.Logger, worker.WithBatchSize(10))

	published, err := processor.ProcessBatch(s.Ctx)
	s.Require().NoError(err)
	s.Require().Equal(2, published)
	s.Require().Equal(1, producer.count(domain.TopicCatalogEvents))
	s.Require().Equal(1, producer.count(domain.TopicUserEvents))

	var pending int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NULL`).Scan(&pending))
	s.Require().Zero(pending)

	published, err = processor.ProcessBatch(s.Ctx)
	s.Require().NoError(err)
	s.Require().Zero(published)
}
