package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/password"
	"github.com/miniblog/backend/internal/repositories"
	"go.uber.org/zap"
)

// Recoverable registration and login outcomes, surfaced to users as notices
var (
	ErrPasswordMismatch   = errors.New("passwords must match")
	ErrUsernameTaken      = errors.New("username is taken")
	ErrEmailTaken         = errors.New("email is taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserRepository is the interface that wraps methods for user table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, the error will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements registration and login business logic
type authService struct {
	userRepo   UserRepository
	logger     *zap.Logger
	adminEmail string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, logger *zap.Logger, adminEmail string) *authService {
	return &authService{
		userRepo:   userRepo,
		logger:     logger,
		adminEmail: adminEmail,
	}
}

// Register creates a new user account. Registration with the reserved admin
// email yields admin status; every other registration yields user status.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	// The form-level equality rule already covers this; the check is repeated
	// here so the service holds regardless of who calls it.
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	usernameTaken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		return nil, ErrUsernameTaken
	}

	emailTaken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	status := models.StatusUser
	if req.Email == s.adminEmail {
		status = models.StatusAdmin
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Status:       status,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user. A missing user and a wrong password produce
// the identical generic error so the two cases cannot be told apart.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
