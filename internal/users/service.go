package users

import (
	"context"
	"errors"
	"strings"

	"github.com/listplus/listplus-backend/pkg/db/models"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"gorm.io/gorm"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// Service exposes user profile operations.
type Service interface {
	// StoreUser upserts the identity-provider record. The returned bool is
	// true when a new row was created.
	StoreUser(ctx context.Context, input StoreUserInput) (*UserDTO, bool, error)
	GetProfile(ctx context.Context, uid string) (*UserDTO, error)
	UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*UserDTO, error)
	DeleteProfile(ctx context.Context, uid string) error
	GetByIDs(ctx context.Context, ids []string) ([]UserDTO, error)
}

type service struct {
	repo userRepository
}

// NewService builds a user service with the required repository.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) StoreUser(ctx context.Context, input StoreUserInput) (*UserDTO, bool, error) {
	uid := strings.TrimSpace(input.UID)
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if uid == "" || email == "" || name == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "uid, email and name are required")
	}

	existing, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
		user := &models.User{ID: uid, Email: email, Name: name, Phone: input.Phone}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		return toUserDTO(user), true, nil
	}

	existing.Email = email
	existing.Name = name
	if input.Phone != nil {
		existing.Phone = input.Phone
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return toUserDTO(existing), false, nil
}

func (s *service) GetProfile(ctx context.Context, uid string) (*UserDTO, error) {
	user, err := s.findUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*UserDTO, error) {
	user, err := s.findUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = trimmed
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return toUserDTO(user), nil
}

func (s *service) DeleteProfile(ctx context.Context, uid string) error {
	if _, err := s.findUser(ctx, uid); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func (s *service) GetByIDs(ctx context.Context, ids []string) ([]UserDTO, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one user id is required")
	}

	records, err := s.repo.FindByIDs(ctx, cleaned)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}
	dtos := make([]UserDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toUserDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) findUser(ctx context.Context, uid string) (*models.User, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
