package models

import "time"

// Memory is one timeline entry: a dated photo with a description, owned by
// exactly one user. PhotoPath is the relative path served under /uploads and
// never changes after creation.
type Memory struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Date        string    `json:"date"` // calendar date, YYYY-MM-DD
	Description string    `json:"description"`
	PhotoPath   string    `json:"photo_path"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateMemoryRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}
