package usersrv

import (
	"context"
	"time"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/user"
	"github.com/google/uuid"
)

// UserService provides business operations for users
type UserService struct {
	userRepo user.Repository
}

// NewUserService creates a new instance of the user service
func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser creates a new user
func (s *UserService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	newUser := &user.User{
		ID:        kernel.NewUserID(uuid.NewString()),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	return newUser, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}

	return u, nil
}

// GetUserByEmail retrieves a user by email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("email", email)
	}

	return u, nil
}

// ListUsers retrieves all users
func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}

	return users, nil
}

// DeleteUser deletes a user and all their applications
func (s *UserService) DeleteUser(ctx context.Context, id kernel.UserID) error {
	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return err
		}
		return errx.Wrap(err, "failed to delete user", errx.TypeInternal)
	}

	return nil
}
