package models

import "time"

// Post represents a blog post
type Post struct {
	ID         int       `json:"id"`
	Header     string    `json:"header"`
	Content    string    `json:"content"`
	DatePosted time.Time `json:"date_posted"` // set at creation, immutable
	UserID     int       `json:"user_id"`
	// Author username (filled by JOIN when rendering the feed)
	Username string `json:"username"`
}
