package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
)

const defaultTimeout = 4 * time.Second

type base struct {
	timeout time.Duration
}

func newBase(timeout time.Duration) base {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return base{timeout: timeout}
}

func (b base) context(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), b.timeout)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dto.NewValidationError("id", "Id must be a positive integer")
	}

	return id, nil
}

// parseBody decodes the JSON body into v and validates it.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return dto.NewValidationError("body", "Malformed JSON request")
	}

	return dto.Validate(v)
}
