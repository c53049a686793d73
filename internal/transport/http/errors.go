package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/service"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Timestamp  string          `json:"timestamp"`
	Status     int             `json:"status"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Path       string          `json:"path"`
	Violations []dto.Violation `json:"violations,omitempty"`
}

// ErrorHandler renders every error returned by a handler as an ErrorResponse.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		res := ErrorResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Path:      c.Path(),
		}

		var (
			validationErr *dto.ValidationError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.Is(err, service.ErrNotFound):
			res.Status = fiber.StatusNotFound
			res.Error = "Resource not found."
			res.Message = err.Error()
		case errors.Is(err, service.ErrDatabase):
			res.Status = fiber.StatusBadRequest
			res.Error = "Database error."
			res.Message = err.Error()
		case errors.As(err, &validationErr):
			res.Status = fiber.StatusBadRequest
			res.Error = "Invalid data."
			res.Message = err.Error()
			res.Violations = validationErr.Violations
		case errors.As(err, &fiberErr):
			res.Status = fiberErr.Code
			res.Error = statusText(fiberErr.Code)
			res.Message = fiberErr.Message
		default:
			res.Status = fiber.StatusInternalServerError
			res.Error = "Internal server error."
			res.Message = "An unexpected error occurred"
		}

		ctx := c.UserContext()
		if res.Status >= fiber.StatusInternalServerError {
			mylogger.Error(ctx, logger, "request failed", zap.String("path", res.Path), zap.Int("status", res.Status), zap.Error(err))
		} else {
			mylogger.Warn(ctx, logger, "request rejected", zap.String("path", res.Path), zap.Int("status", res.Status), zap.Error(err))
		}

		return c.Status(res.Status).JSON(res)
	}
}

func statusText(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "Resource not found."
	case fiber.StatusTooManyRequests:
		return "Too many requests."
	}

	if text := fiberutils.StatusMessage(code); text != "" {
		return text + "."
	}
	return "Internal server error."
}
