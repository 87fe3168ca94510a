package session

import (
	"context"

	"github.com/miniblog/backend/internal/models"
)

type contextKey string

const sessionKey contextKey = "session"

// WithSession attaches an identity snapshot to the context
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// FromContext retrieves the identity snapshot, or nil when anonymous
func FromContext(ctx context.Context) *models.Session {
	if session, ok := ctx.Value(sessionKey).(*models.Session); ok {
		return session
	}
	return nil
}

// IsAuthenticated reports whether the request carries an authenticated identity
func IsAuthenticated(ctx context.Context) bool {
	return FromContext(ctx) != nil
}

// Status returns the session's user status, or "" when anonymous
func Status(ctx context.Context) string {
	if session := FromContext(ctx); session != nil {
		return session.Status
	}
	return ""
}
