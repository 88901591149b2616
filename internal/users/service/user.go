package service

import (
	"context"
	"errors"
	"fmt"

	userserrors "shareit/internal/users/errors"
	"shareit/internal/users/repository"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type UserService interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id string, patch *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewUserService(repo repository.UserRepository, log *logger.Logger) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = ""
	user.Name = sanitizer.TrimAndNormalize(user.Name)
	user.Email = sanitizer.NormalizeEmail(user.Email)

	if err := s.validate.Struct(user); err != nil {
		return nil, apperrors.Validation("user validation failed")
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.translate(err, user.ID)
	}

	s.log.Info("user created", "user_id", user.ID)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.translate(err, "")
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

// Update applies a partial patch. Absent fields keep their stored values.
func (s *userService) Update(ctx context.Context, id string, patch *model.UserUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id)
	}

	if patch.Name != nil {
		user.Name = sanitizer.TrimAndNormalize(*patch.Name)
	}
	if patch.Email != nil {
		user.Email = sanitizer.NormalizeEmail(*patch.Email)
	}

	if err := s.validate.Struct(user); err != nil {
		return nil, apperrors.Validation("user validation failed")
	}

	if err := s.repo.Update(ctx, id, user); err != nil {
		return nil, s.translate(err, id)
	}

	s.log.Info("user updated", "user_id", id)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id)
	}
	s.log.Info("user deleted", "user_id", id)
	return nil
}

func (s *userService) translate(err error, id string) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, userserrors.ErrNotFound), errors.Is(err, userserrors.ErrInvalidID):
		return apperrors.NotFoundWithID("User", id)
	case errors.Is(err, userserrors.ErrDuplicateEmail):
		return apperrors.Conflict(userserrors.ErrDuplicateEmail.Error())
	default:
		return apperrors.Internal(fmt.Sprintf("user operation failed: %v", err), err)
	}
}
