package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/miniblog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupSessionTestRepository creates a session repository with a mock database
func setupSessionTestRepository(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSessionRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSessionRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		session       *models.Session
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			session: &models.Session{
				Token:    "11111111-2222-3333-4444-555555555555",
				UserID:   1,
				Username: "alice",
				Status:   models.StatusUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WithArgs("11111111-2222-3333-4444-555555555555", 1, "alice", models.StatusUser).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedID: 1,
		},
		{
			name: "database error on insert",
			session: &models.Session{
				Token:    "11111111-2222-3333-4444-555555555555",
				UserID:   1,
				Username: "alice",
				Status:   models.StatusUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WithArgs("11111111-2222-3333-4444-555555555555", 1, "alice", models.StatusUser).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.session)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.session.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByToken(t *testing.T) {
	tests := []struct {
		name            string
		token           string
		setupMock       func(sqlmock.Sqlmock)
		expectedError   error
		expectedSession *models.Session
	}{
		{
			name:  "success",
			token: "11111111-2222-3333-4444-555555555555",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "token", "user_id", "username", "status"}).
					AddRow(1, "11111111-2222-3333-4444-555555555555", 3, "alice", models.StatusAdmin)
				mock.ExpectQuery(`SELECT id, token, user_id, username, status`).
					WithArgs("11111111-2222-3333-4444-555555555555").
					WillReturnRows(rows)
			},
			expectedSession: &models.Session{
				ID:       1,
				Token:    "11111111-2222-3333-4444-555555555555",
				UserID:   3,
				Username: "alice",
				Status:   models.StatusAdmin,
			},
		},
		{
			name:  "not found",
			token: "stale-token",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, token, user_id, username, status`).
					WithArgs("stale-token").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrSessionNotFound,
		},
		{
			name:  "database error",
			token: "11111111-2222-3333-4444-555555555555",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, token, user_id, username, status`).
					WithArgs("11111111-2222-3333-4444-555555555555").
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			session, err := repo.GetByToken(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, session)
				if errors.Is(tt.expectedError, ErrSessionNotFound) {
					assert.ErrorIs(t, err, ErrSessionNotFound)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSession, session)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_DeleteByToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:  "success",
			token: "11111111-2222-3333-4444-555555555555",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions`).
					WithArgs("11111111-2222-3333-4444-555555555555").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:  "database error",
			token: "11111111-2222-3333-4444-555555555555",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions`).
					WithArgs("11111111-2222-3333-4444-555555555555").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.DeleteByToken(context.Background(), tt.token)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_DeleteByUserID(t *testing.T) {
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
				mock.ExpectExec(`DELETE FROM sessions`).
					WithArgs(3).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name:   "database error",
			userID: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions`).
					WithArgs(3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
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
