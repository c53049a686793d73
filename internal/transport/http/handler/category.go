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

type CategoryHandler struct {
	base
	service service.CategoryService
	logger  *zap.Logger
}

func NewCategoryHandler(service service.CategoryService, logger *zap.Logger, timeout time.Duration) *CategoryHandler {
	return &CategoryHandler{
		base:    newBase(timeout),
		service: service,
		logger:  logger,
	}
}

func (h *CategoryHandler) FindAll(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.service.FindAll(ctx)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *CategoryHandler) FindByID(c *fiber.Ctx) error {
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

func (h *CategoryHandler) Insert(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	req := new(dto.CategoryRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid create category request", zap.Error(err))
		return err
	}

	res, err := h.service.Insert(ctx, req)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/categories/%d", res.ID))
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	req := new(dto.CategoryRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid update category request", zap.Int64("category_id", id), zap.Error(err))
		return err
	}

	res, err := h.service.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
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
