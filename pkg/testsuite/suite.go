package testsuite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/db"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// BaseSuite starts postgres (migrated) for every integration suite.
// Kafka and redis are opt-in through WithKafka and WithRedis.
type BaseSuite struct {
	suite.Suite
	PgContainer    *postgres.PostgresContainer
	KafkaContainer *kafka.KafkaContainer
	RedisContainer *tcredis.RedisContainer
	DbPool         *pgxpool.Pool
	RedisClient    *redis.Client
	KafkaBrokers   []string
	Logger         *zap.Logger
	Ctx            context.Context
}

type Option func(*options)

type options struct {
	kafka bool
	redis bool
}

func WithKafka() Option { return func(o *options) { o.kafka = true } }
func WithRedis() Option { return func(o *options) { o.redis = true } }

func (s *BaseSuite) SetupInfrastructure(migrationsRelPath string, opts ...Option) {
	if testing.Short() {
		s.T().Skip("skipping integration tests in short mode")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s.Ctx = context.Background()
	s.Logger = zap.NewNop()

	var err error
	s.PgContainer, err = postgres.Run(
		s.Ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	connStr, err := s.PgContainer.ConnectionString(s.Ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(db.RunMigrations(migrationsRelPath, connStr))

	s.DbPool, err = pgxpool.New(s.Ctx, connStr)
	s.Require().NoError(err)

	if o.kafka {
		s.KafkaContainer, err = kafka.Run(
			s.Ctx,
			"confluentinc/cp-kafka:7.5.0",
			kafka.WithClusterID("test-cluster"),
		)
		s.Require().NoError(err)

		s.KafkaBrokers, err = s.KafkaContainer.Brokers(s.Ctx)
		s.Require().NoError(err)
	}

	if o.redis {
		s.RedisContainer, err = tcredis.Run(s.Ctx, "redis:7-alpine")
		s.Require().NoError(err)

		uri, err := s.RedisContainer.ConnectionString(s.Ctx)
		s.Require().NoError(err)

		redisOpts, err := redis.ParseURL(uri)
		s.Require().NoError(err)

		s.RedisClient = redis.NewClient(redisOpts)
	}
}

func (s *BaseSuite) TearDownInfrastructure() {
	if s.DbPool != nil {
		s.DbPool.Close()
	}
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}

	if s.PgContainer != nil {
		s.terminate("postgres", s.PgContainer)
	}
	if s.KafkaContainer != nil {
		s.terminate("kafka", s.KafkaContainer)
	}
	if s.RedisContainer != nil {
		s.terminate("redis", s.RedisContainer)
	}
}

func (s *BaseSuite) terminate(name string, c testcontainers.Container) {
	if err := c.Terminate(s.Ctx); err != nil {
		s.T().Logf("Failed to terminate %s container: %v", name, err)
	}
}

func (s *BaseSuite) TruncateTables(tableNames ...string) {
	for _, name := range tableNames {
		_, err := s.DbPool.Exec(s.Ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", name))
		s.Require().NoError(err)
	}
}
