package models

import "time"

// Session maps an opaque cookie token to an authenticated user. Sessions live
// in the database so a logout revokes them immediately.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
