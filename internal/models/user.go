package models

// User statuses
const (
	StatusUser  = "user"
	StatusAdmin = "admin"
)

// ValidStatus reports whether s is one of the two allowed user statuses
func ValidStatus(s string) bool {
	return s == StatusUser || s == StatusAdmin
}

// User represents a registered account
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Status       string `json:"status"` // "user" or "admin"
	PasswordHash string `json:"-"`      // Never serialize password hash
}

// IsAdmin reports whether the user holds the admin status
func (u *User) IsAdmin() bool {
	return u.Status == StatusAdmin
}

// RegisterRequest represents a parsed registration form submission
type RegisterRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginRequest represents a parsed login form submission
type LoginRequest struct {
	Username string
	Password string
}
