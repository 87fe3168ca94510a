// Package session maps the opaque browser cookie to the server-side
// authenticated-identity snapshot, and carries one-time flash notices.
package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/miniblog/backend/internal/models"
	"go.uber.org/zap"
)

// CookieName is the browser cookie holding the opaque session token
const CookieName = "session_token"

// Repository is the server-side store behind the session cookie
type Repository interface {
	// Create inserts a new session row
	Create(ctx context.Context, session *models.Session) error
	// GetByToken resolves an opaque token to its identity snapshot
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// DeleteByToken removes a session row
	DeleteByToken(ctx context.Context, token string) error
}

// Manager starts, resolves and ends browser sessions
type Manager struct {
	repo   Repository
	logger *zap.Logger
}

// NewManager creates a new session manager
func NewManager(repo Repository, logger *zap.Logger) *Manager {
	return &Manager{
		repo:   repo,
		logger: logger,
	}
}

// Start opens a session for the user and sets the browser cookie
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, user *models.User) error {
	session := &models.Session{
		Token:    uuid.New().String(),
		UserID:   user.ID,
		Username: user.Username,
		Status:   user.Status,
	}

	if err := m.repo.Create(ctx, session); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// End deletes the server-side session row and expires the cookie
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.repo.DeleteByToken(ctx, cookie.Value); err != nil {
			m.logger.Warn("failed to delete session", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the session cookie into a request-scoped identity
// snapshot. Anonymous requests and stale tokens pass through with no identity.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
			if session, err := m.repo.GetByToken(r.Context(), cookie.Value); err == nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}
		}

		next.ServeHTTP(w, r)
	})
}
