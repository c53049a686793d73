package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	checks map[string]Pinger
	logger *zap.Logger
}

func NewHealthHandler(checks map[string]Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
	defer cancel()

	status := fiber.StatusOK
	components := make(fiber.Map, len(h.checks))

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			mylogger.Warn(ctx, h.logger, "health check failed", zap.String("component", name), zap.Error(err))

			components[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}

		components[name] = "up"
	}

	overall := "up"
	if status != fiber.StatusOK {
		overall = "down"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":     overall,
		"components": components,
	})
}
