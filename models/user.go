package models

import "time"

// User is an account that owns transactions and participates in groups. The
// user id doubles as the actor id recorded on changelog entries.
type User struct {
	UserID       int64     `json:"user_id,omitempty"`
	Login        string    `json:"login"`
	Password     string    `json:"password,omitempty"` // plaintext in requests only, never stored
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}
