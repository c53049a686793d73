package http

import (
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/transport/http/handler"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.uber.org/zap"
)

type Handlers struct {
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Health   *handler.HealthHandler
}

type AppConfig struct {
	LimiterMax        int
	LimiterExpiration time.Duration
}

func NewApp(cfg AppConfig, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "backoffice",
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.NewString()
		},
	}))
	app.Use(otelfiber.Middleware())
	app.Use(func(c *fiber.Ctx) error {
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)
		c.SetUserContext(mylogger.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	})

	if cfg.LimiterMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.LimiterMax,
			Expiration: cfg.LimiterExpiration,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests. Try again later.")
			},
		}))
	}

	return app
}

func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", h.Health.Check)

	users := app.Group("/users")
	users.Get("", h.User.FindAll)
	users.Get("/:id", h.User.FindByID)
	users.Post("", h.User.Insert)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", h.User.Delete)

	categories := app.Group("/categories")
	categories.Get("", h.Category.FindAll)
	categories.Get("/:id", h.Category.FindByID)
	categories.Post("", h.Category.Insert)
	categories.Put("/:id", h.Category.Update)
	categories.Delete("/:id", h.Category.Delete)

	products := app.Group("/products")
	products.Get("", h.Product.FindAll)
	products.Get("/:id", h.Product.FindByID)
	products.Post("", h.Product.Insert)
	products.Patch("/:id", h.Product.Update)
	products.Delete("/:id", h.Product.Delete)

	orders := app.Group("/orders")
	orders.Get("", h.Order.FindAll)
	orders.Get("/:id", h.Order.FindByID)
	orders.Post("", h.Order.Insert)
	orders.Delete("/:id", h.Order.Delete)
}
