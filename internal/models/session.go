package models

// Session is the server-side identity snapshot behind an opaque browser cookie.
// The browser holds only the random token; the authenticated fields live here.
type Session struct {
	ID       int    `json:"id"`
	Token    string `json:"-"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

// IsAdmin reports whether the session belongs to an admin user
func (s *Session) IsAdmin() bool {
	return s != nil && s.Status == StatusAdmin
}
