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

type UserHandler struct {
	base
	service service.UserService
	logger  *zap.Logger
}

func NewUserHandler(service service.UserService, logger *zap.Logger, timeout time.Duration) *UserHandler {
	return &UserHandler{
		base:    newBase(timeout),
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) FindAll(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.service.FindAll(ctx)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *UserHandler) FindByID(c *fiber.Ctx) error {
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

func (h *UserHandler) Insert(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	req := new(dto.UserRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid create user request", zap.Error(err))
		return err
	}

	res, err := h.service.Insert(ctx, req)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/users/%d", res.ID))
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	req := new(dto.UserUpdateRequest)
	if err := parseBody(c, req); err != nil {
		mylogger.Warn(ctx, h.logger, "invalid update user request", zap.Int64("user_id", id), zap.Error(err))
		return err
	}

	res, err := h.service.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
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
