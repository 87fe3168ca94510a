package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/miniblog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupPostTestRepository creates a post repository with a mock database
func setupPostTestRepository(t *testing.T) (*postRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestPostRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		post          *models.Post
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			post: &models.Post{
				Header:  "First post",
				Content: "Hello world",
				UserID:  1,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs("First post", "Hello world", sqlmock.AnyArg(), 1).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name: "database error on insert",
			post: &models.Post{
				Header:  "First post",
				Content: "Hello world",
				UserID:  1,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs("First post", "Hello world", sqlmock.AnyArg(), 1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "error getting last insert id",
			post: &models.Post{
				Header:  "First post",
				Content: "Hello world",
				UserID:  1,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs("First post", "Hello world", sqlmock.AnyArg(), 1).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.post)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.post.ID)
				assert.False(t, tt.post.DatePosted.IsZero())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_GetByID(t *testing.T) {
	posted := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		postID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedPost  *models.Post
	}{
		{
			name:   "success",
			postID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "header", "content", "date_posted", "user_id"}).
					AddRow(1, "First post", "Hello world", posted, 3)
				mock.ExpectQuery(`SELECT id, header, content, date_posted, user_id`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedPost: &models.Post{
				ID:         1,
				Header:     "First post",
				Content:    "Hello world",
				DatePosted: posted,
				UserID:     3,
			},
		},
		{
			name:   "not found",
			postID: 999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, header, content, date_posted, user_id`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrPostNotFound,
		},
		{
			name:   "database error",
			postID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, header, content, date_posted, user_id`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			post, err := repo.GetByID(context.Background(), tt.postID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, post)
				if errors.Is(tt.expectedError, ErrPostNotFound) {
					assert.ErrorIs(t, err, ErrPostNotFound)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPost, post)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_GetAllDesc(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		setupMock       func(sqlmock.Sqlmock)
		expectedError   bool
		expectedHeaders []string
	}{
		{
			name: "newest first",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "header", "content", "date_posted", "user_id", "username"}).
					AddRow(3, "Third", "c", now, 1, "alice").
					AddRow(2, "Second", "b", now.Add(-time.Hour), 2, "bob").
					AddRow(1, "First", "a", now.Add(-2*time.Hour), 1, "alice")
				mock.ExpectQuery(`SELECT p.id, p.header, p.content, p.date_posted, p.user_id, u.username`).
					WillReturnRows(rows)
			},
			expectedHeaders: []string{"Third", "Second", "First"},
		},
		{
			name: "no posts",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "header", "content", "date_posted", "user_id", "username"})
				mock.ExpectQuery(`SELECT p.id, p.header, p.content, p.date_posted, p.user_id, u.username`).
					WillReturnRows(rows)
			},
			expectedHeaders: nil,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT p.id, p.header, p.content, p.date_posted, p.user_id, u.username`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "header", "content", "date_posted", "user_id", "username"}).
					AddRow("invalid", "First", "a", now, 1, "alice")
				mock.ExpectQuery(`SELECT p.id, p.header, p.content, p.date_posted, p.user_id, u.username`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			posts, err := repo.GetAllDesc(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, posts)
			} else {
				assert.NoError(t, err)
				var headers []string
				for _, p := range posts {
					headers = append(headers, p.Header)
				}
				assert.Equal(t, tt.expectedHeaders, headers)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		postID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:   "success",
			postID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "database error",
			postID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.postID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_DeleteByUserID(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:   "success",
			userID: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(3).
					WillReturnResult(sqlmock.NewResult(0, 4))
			},
		},
		{
			name:   "no posts for user",
			userID: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(3).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name:   "database error",
			userID: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.DeleteByUserID(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
