package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/service"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.uber.org/zap"
)

type OrderHandler struct {
	base
	service service.OrderService
	logger  *zap.Logger
}

func NewOrderHandler(service service.OrderService, logger *zap.Logger, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		base:    newBase(timeout),
		service: service,
		logger:  logger,
	}
}

func (h *OrderHandler) FindAll(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.service.FindAll(ctx)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *OrderHandler) FindByID(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	res, err := h.service.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *OrderHandler) Insert(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	req := new(dto.OrderRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid create order request", zap.Error(err))
		return err
	}

	res, err := h.service.Insert(ctx, req)
	if err != nil {
		mylogger.Warn(
			ctx,
			h.logger,
			"create order failed",
			zap.Int64("client_id", req.ClientID),
			zap.Int("items", len(req.Items)),
			zap.Error(err),
		)

		return err
	}

	c.Location(fmt.Sprintf("/orders/%d", res.ID))
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(ctx, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
