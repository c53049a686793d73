package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, tx pgx.Tx, user *domain.User) (int64, error)
	GetByID(ctx context.Context, q Querier, id int64) (*domain.User, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, tx pgx.Tx, user *domain.User) error
	DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error
}

type userRepo struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewUserRepository(pool *pgxpool.Pool, logger *zap.Logger) UserRepository {
	return &userRepo{
		pool:   pool,
		tracer: otel.Tracer("internal/repository/user"),
		logger: logger,
	}
}

const userColumns = `id, name, email, phone, password, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, tx pgx.Tx, user *domain.User) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.Create")
	defer span.End()

	query := `
		INSERT INTO users (name, email, phone, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query, user.Name, user.Email, user.Phone, user.Password).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		err = classify(err)

		if !errors.Is(err, ErrUniqueViolation) {
			mylogger.Error(ctx, r.logger, "Error creating user", zap.Error(err))
		}

		return 0, fmt.Errorf("error creating user: %w", err)
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))

	return user.ID, nil
}

func (r *userRepo) GetByID(ctx context.Context, q Querier, id int64) (*domain.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.GetByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return r.getOne(ctx, span, q, query, id)
}

func (r *userRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.GetByIDForUpdate")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	return r.getOne(ctx, span, tx, query, id)
}

func (r *userRepo) getOne(ctx context.Context, span trace.Span, q Querier, query string, id int64) (*domain.User, error) {
	user, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error getting user", zap.Int64("id", id), zap.Error(err))

		return nil, fmt.Errorf("error getting user %d: %w", id, err)
	}

	return user, nil
}

func (r *userRepo) List(ctx context.Context) ([]*domain.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.List")
	defer span.End()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		mylogger.Error(ctx, r.logger, "Error listing users", zap.Error(err))

		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("error scanning user: %w", err)
		}

		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	span.SetAttributes(attribute.Int("result_count", len(users)))

	return users, nil
}

func (r *userRepo) Update(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	ctx, span := r.tracer.Start(ctx, "UserRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", user.ID))

	query := `
		UPDATE users
		SET name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := tx.QueryRow(ctx, query, user.Name, user.Email, user.Phone, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}

		span.RecordError(err)
		err = classify(err)

		if !errors.Is(err, ErrUniqueViolation) {
			mylogger.Error(ctx, r.logger, "Error updating user", zap.Int64("id", user.ID), zap.Error(err))
		}

		return fmt.Errorf("error updating user %d: %w", user.ID, err)
	}

	return nil
}

func (r *userRepo) DeleteByID(ctx context.Context, tx pgx.Tx, id int64) error {
	ctx, span := r.tracer.Start(ctx, "UserRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	commandTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		err = classify(err)

		if !errors.Is(err, ErrForeignKeyViolation) {
			mylogger.Error(ctx, r.logger, "Error deleting user", zap.Int64("id", id), zap.Error(err))
		}

		return fmt.Errorf("error deleting user %d: %w", id, err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
