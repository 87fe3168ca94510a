package services

import (
	"context"
	"errors"

	"github.com/miniblog/backend/internal/models"
	"go.uber.org/zap"
)

// ErrNoPermission is returned when a user acts on a post they do not own
var ErrNoPermission = errors.New("no permission")

// PostRepository is the interface that wraps methods for post table data access
type PostRepository interface {
	// Method Create inserts a new post; its ID and posting time are set on success.
	//
	// If some error occurs during post creation, the error will be returned.
	Create(ctx context.Context, post *models.Post) error
	// Method GetByID retrieves a post by ID.
	//
	// If post with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, postID int) (*models.Post, error)
	// Method GetAllDesc retrieves all posts with author usernames, newest first.
	//
	// If some error occurs, the error will be returned together with "nil" value.
	GetAllDesc(ctx context.Context) ([]models.Post, error)
	// Method Delete deletes a post by ID.
	//
	// If some error occurs during post deletion, the error will be returned.
	Delete(ctx context.Context, postID int) error
}

// postService implements post authoring business logic
type postService struct {
	postRepo PostRepository
	logger   *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(postRepo PostRepository, logger *zap.Logger) *postService {
	return &postService{
		postRepo: postRepo,
		logger:   logger,
	}
}

// Create stores a new post owned by the given user
func (s *postService) Create(ctx context.Context, userID int, header, content string) (*models.Post, error) {
	post := &models.Post{
		Header:  header,
		Content: content,
		UserID:  userID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListNewestFirst returns the post feed ordered by posting time, most recent first
func (s *postService) ListNewestFirst(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.GetAllDesc(ctx)
}

// Delete removes a post on behalf of userID. Only the post's owner may
// delete it; anyone else gets ErrNoPermission and the post survives.
func (s *postService) Delete(ctx context.Context, postID, userID int) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNoPermission
	}

	return s.postRepo.Delete(ctx, postID)
}
