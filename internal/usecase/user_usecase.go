package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// UserUseCase - пользователи; пароль хранится только как bcrypt хеш
type UserUseCase struct {
	userRepo   repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

func NewUserUseCase(userRepo repository.UserRepository, logger *zap.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// WithBcryptCost меняет стоимость хеширования (в тестах - bcrypt.MinCost)
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.bcryptCost = cost
	return uc
}

func (uc *UserUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	user := &domain.User{
		Username:       req.Username,
		HashedPassword: string(hash),
		Email:          req.Email,
		IsAdmin:        req.IsAdmin,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("User created", zap.Int64("id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *UserUseCase) Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (*domain.User, error) {
	return uc.userRepo.Update(ctx, id, req.ToDomain())
}

func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.userRepo.Delete(ctx, id)
}
