package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/mapper"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/repository"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/mylogger"
	"github.com/sakashimaa/go-pet-project/backoffice/pkg/outbox/worker"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 12

const msgEmailTaken = "Email already registered"

type UserService interface {
	FindAll(ctx context.Context) ([]dto.UserResponse, error)
	FindByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	Insert(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id int64, req *dto.UserUpdateRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	pool       *pgxpool.Pool
	userRepo   repository.UserRepository
	outboxRepo worker.OutboxRepository
	logger     *zap.Logger
}

func NewUserService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	userRepo repository.UserRepository,
	outboxRepo worker.OutboxRepository,
) UserService {
	return &userService{
		pool:       pool,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

func (s *userService) FindAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.UsersToResponse(users), nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, s.pool, id)
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.UserToResponse(user)
	return &res, nil
}

func (s *userService) Insert(ctx context.Context, req *dto.UserRequest) (*dto.UserResponse, error) {
	user := mapper.UserFromRequest(req)

	hashedPass, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPass)

	err = inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if _, err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		return saveEvent(ctx, tx, s.outboxRepo, domain.TopicUserEvents, "user", user.ID, domain.EventUserCreated, domain.UserEvent{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		})
	})
	if err != nil {
		return nil, s.translate(ctx, 0, err)
	}

	mylogger.Info(ctx, s.logger, "User created", zap.Int64("user_id", user.ID))

	res := mapper.UserToResponse(user)
	return &res, nil
}

func (s *userService) Update(ctx context.Context, id int64, req *dto.UserUpdateRequest) (*dto.UserResponse, error) {
	var user *domain.User

	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		var err error
		user, err = s.userRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		mapper.ApplyUserUpdate(req, user)

		if err := s.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}

		return saveEvent(ctx, tx, s.outboxRepo, domain.TopicUserEvents, "user", user.ID, domain.EventUserUpdated, domain.UserEvent{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		})
	})
	if err != nil {
		return nil, s.translate(ctx, id, err)
	}

	res := mapper.UserToResponse(user)
	return &res, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	err := inTx(ctx, s.pool, s.logger, func(tx pgx.Tx) error {
		if err := s.userRepo.DeleteByID(ctx, tx, id); err != nil {
			return err
		}

		return saveEvent(ctx, tx, s.outboxRepo, domain.TopicUserEvents, "user", id, domain.EventUserDeleted, domain.UserEvent{UserID: id})
	})
	if err != nil {
		return s.translate(ctx, id, err)
	}

	mylogger.Info(ctx, s.logger, "User deleted", zap.Int64("user_id", id))

	return nil
}

func (s *userService) translate(ctx context.Context, id int64, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		mylogger.Warn(ctx, s.logger, "User not found", zap.Int64("user_id", id))
		return &NotFoundError{ID: id}
	case errors.Is(err, repository.ErrUniqueViolation):
		return &DatabaseError{Msg: msgEmailTaken, Err: err}
	case errors.Is(err, repository.ErrForeignKeyViolation):
		mylogger.Warn(ctx, s.logger, "User is referenced by orders", zap.Int64("user_id", id))
		return inUse("User", err)
	}

	return storageError(err)
}
