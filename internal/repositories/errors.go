package repositories

import "errors"

// Not-found sentinels, returned instead of sql.ErrNoRows so callers can
// branch without importing database/sql
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrSessionNotFound = errors.New("session not found")
)
