package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      Clock
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, clock Clock, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		now:      clock,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: us.now(),
		},
		Name:  req.Name,
		Email: req.Email,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			us.log.Warn("Email already registered", zap.String("email", user.Email))
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	us.log.Info("User created", zap.String("user_id", user.ID.String()))

	return response.UserToResponse(user), nil
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUserNotFound, userID)
	}

	return response.UserToResponse(user), nil
}
