package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/miniblog/backend/internal/models"
	"go.uber.org/zap"
)

// postRepository implements post table data access
type postRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sql.DB, logger *zap.Logger) *postRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new post, setting the posting time
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (header, content, date_posted, user_id)
		VALUES (?, ?, ?, ?)
	`

	post.DatePosted = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query, post.Header, post.Content, post.DatePosted, post.UserID)
	if err != nil {
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	post.ID = int(id)
	return nil
}

// GetByID retrieves a post by ID
func (r *postRepository) GetByID(ctx context.Context, postID int) (*models.Post, error) {
	query := `
		SELECT id, header, content, date_posted, user_id
		FROM posts
		WHERE id = ?
		LIMIT 1
	`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, postID).Scan(
		&post.ID,
		&post.Header,
		&post.Content,
		&post.DatePosted,
		&post.UserID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		r.logger.Error("failed to get post by id", zap.Error(err), zap.Int("postID", postID))
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// GetAllDesc retrieves all posts with their author usernames, newest first
func (r *postRepository) GetAllDesc(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT p.id, p.header, p.content, p.date_posted, p.user_id, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.date_posted DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get posts", zap.Error(err))
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Header, &post.Content, &post.DatePosted, &post.UserID, &post.Username); err != nil {
			r.logger.Error("failed to scan post", zap.Error(err))
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// Delete deletes a post by ID
func (r *postRepository) Delete(ctx context.Context, postID int) error {
	query := `
		DELETE FROM posts
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		r.logger.Error("failed to delete post", zap.Error(err), zap.Int("postID", postID))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// DeleteByUserID deletes all posts owned by a user
func (r *postRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `
		DELETE FROM posts
		WHERE user_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		r.logger.Error("failed to delete posts by user id", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to delete posts by user id: %w", err)
	}

	return nil
}
