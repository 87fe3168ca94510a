package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/miniblog/backend/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidStatus is returned when a status change names an unknown status
var ErrInvalidStatus = errors.New("invalid status")

// AdminUserRepository is the interface that wraps user table methods the admin flows need
type AdminUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetAll retrieves all users ordered by ID.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method UpdateStatus updates a user's status.
	//
	// If some error occurs during update, the error will be returned.
	UpdateStatus(ctx context.Context, userID int, status string) error
	// Method Delete deletes a user by ID.
	//
	// If some error occurs during deletion, the error will be returned.
	Delete(ctx context.Context, userID int) error
}

// AdminPostRepository is the interface that wraps post table methods the admin flows need
type AdminPostRepository interface {
	// Method DeleteByUserID deletes all posts owned by a user.
	//
	// If some error occurs during deletion, the error will be returned.
	DeleteByUserID(ctx context.Context, userID int) error
}

// AdminSessionRepository is the interface that wraps session table methods the admin flows need
type AdminSessionRepository interface {
	// Method DeleteByUserID deletes all sessions belonging to a user.
	//
	// If some error occurs during deletion, the error will be returned.
	DeleteByUserID(ctx context.Context, userID int) error
}

// adminService implements user management business logic
type adminService struct {
	userRepo    AdminUserRepository
	postRepo    AdminPostRepository
	sessionRepo AdminSessionRepository
	logger      *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo AdminUserRepository,
	postRepo AdminPostRepository,
	sessionRepo AdminSessionRepository,
	logger *zap.Logger,
) *adminService {
	return &adminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// ListUsers returns every account for the management page
func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// ChangeStatus sets the target user's status and returns the updated user.
// The new status must be one of the two enumerated values.
func (s *adminService) ChangeStatus(ctx context.Context, userID int, newStatus string) (*models.User, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, newStatus); err != nil {
		return nil, err
	}

	user.Status = newStatus
	return user, nil
}

// DeleteUser deletes the target user after deleting everything they own:
// posts first, then sessions, then the account. The cascade is explicit
// application-level deletion, not a database cascade. selfDeleted reports
// whether the acting admin removed their own account.
func (s *adminService) DeleteUser(ctx context.Context, targetID, actorID int) (selfDeleted bool, err error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	if err := s.postRepo.DeleteByUserID(ctx, targetID); err != nil {
		return false, fmt.Errorf("failed to delete user's posts: %w", err)
	}

	if err := s.sessionRepo.DeleteByUserID(ctx, targetID); err != nil {
		// The account deletion still proceeds; a stale session row only
		// outlives the user until its cookie disappears.
		s.logger.Warn("failed to delete user's sessions", zap.Int("userID", targetID), zap.Error(err))
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return false, err
	}

	return target.ID == actorID, nil
}
