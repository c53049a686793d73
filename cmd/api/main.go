package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/repository"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/service"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/transport/http"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/transport/http/handler"
	kafkaTransport "github.com/sakashimaa/go-pet-project/backoffice/internal/transport/kafka"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/config"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/db"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/kafka"
	outboxRepository "github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/repository"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/worker"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/utils"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger, err := config.NewLogger(config.LoggerConfig{
		Level:   cfg.Logger.Level,
		Env:     cfg.Env,
		Service: cfg.Logger.Service,
	})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = utils.InitTracer(ctx, utils.TracerConfig{
			ServiceName: "backoffice",
			Endpoint:    cfg.Tracing.Endpoint,
			Env:         cfg.Env,
		})
		if err != nil {
			log.Fatalf("Failed to init tracer: %v", err)
		}
	}

	if err := db.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.URL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := db.NewPostgresDB(ctx, db.PostgresConfig{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Error closing redis client", zap.Error(err))
		}
	}()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis is not reachable, product cache will miss", zap.Error(err))
	}

	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	if err != nil {
		log.Fatalf("Failed to create kafka producer: %v", err)
	}
	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			logger.Warn("Error closing kafka producer", zap.Error(err))
		}
	}()

	producer := kafka.NewBreakerProducer(kafkaProducer, utils.NewCircuitBreaker(utils.BreakerConfig{
		Name:        "KafkaProducer",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
	}, logger))

	outboxRepo := outboxRepository.NewOutboxRepository(pool, logger)

	userRepo := repository.NewUserRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	userService := service.NewUserService(pool, logger, userRepo, outboxRepo)
	categoryService := service.NewCategoryService(pool, logger, categoryRepo, outboxRepo)
	productService := service.NewCachedProductService(
		service.NewProductService(pool, logger, productRepo, categoryRepo, outboxRepo),
		redisClient,
		cfg.Redis.CacheTTL,
		logger,
	)
	orderService := service.NewOrderService(pool, logger, orderRepo, userRepo, productRepo, outboxRepo)

	var wg sync.WaitGroup

	outboxProcessor := worker.NewOutboxProcessor(
		pool,
		outboxRepo,
		producer,
		logger,
		worker.WithBatchSize(cfg.Outbox.BatchSize),
		worker.WithInterval(cfg.Outbox.Interval),
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		outboxProcessor.Start(ctx)
	}()

	catalogConsumer := kafkaTransport.NewCatalogConsumer(pool, productService, logger)
	consumerGroup := kafka.NewConsumerGroup(
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		[]string{domain.TopicCatalogEvents},
		catalogConsumer.Handle,
		logger,
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumerGroup.Run(ctx); err != nil {
			logger.Error("Catalog consumer stopped", zap.Error(err))
		}
	}()

	app := http.NewApp(http.AppConfig{
		LimiterMax:        cfg.Limiter.Max,
		LimiterExpiration: cfg.Limiter.Expiration,
	}, logger)

	http.RegisterRoutes(app, &http.Handlers{
		User:     handler.NewUserHandler(userService, logger, cfg.HTTP.Timeout),
		Category: handler.NewCategoryHandler(categoryService, logger, cfg.HTTP.Timeout),
		Product:  handler.NewProductHandler(productService, logger, cfg.HTTP.Timeout),
		Order:    handler.NewOrderHandler(orderService, logger, cfg.HTTP.Timeout),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": pool,
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		}, logger),
	})

	go func() {
		logger.Info("HTTP service listening", zap.String("port", cfg.HTTP.Port))
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Fatalf("Error listening on HTTP port %v: %v\n", cfg.HTTP.Port, err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down gracefully...")
	shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownContext); err != nil {
		logger.Error("Error shutting down HTTP app", zap.Error(err))
	} else {
		logger.Info("HTTP app stopped gracefully")
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Background workers stopped")
	case <-shutdownContext.Done():
		logger.Warn("Background workers did not stop in time", zap.Error(shutdownContext.Err()))
	}

	if tp != nil {
		if err := tp.Shutdown(shutdownContext); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Error("Error shutting down telemetry", zap.Error(err))
		}
	}
}
