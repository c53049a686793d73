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

type ProductHandler struct {
	base
	service service.ProductService
	logger  *zap.Logger
}

func NewProductHandler(service service.ProductService, logger *zap.Logger, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		base:    newBase(timeout),
		service: service,
		logger:  logger,
	}
}

func (h *ProductHandler) FindAll(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.service.FindAll(ctx)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *ProductHandler) FindByID(c *fiber.Ctx) error {
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

func (h *ProductHandler) Insert(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	req := new(dto.ProductRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid create product request", zap.Error(err))
		return err
	}

	res, err := h.service.Insert(ctx, req)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/products/%d", res.ID))
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	req := new(dto.ProductUpdateRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid update product request", zap.Int64("product_id", id), zap.Error(err))
		return err
	}

	res, err := h.service.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
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
