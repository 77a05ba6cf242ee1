package domain

import "time"

type User struct {
	ID           string
	Email        string
	Phone        string // digits only, may be empty
	PasswordHash string // argon2 encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthAudit is one login attempt. Rows are written best-effort and pruned by
// housekeeping.
type AuthAudit struct {
	ID        string
	Email     string
	IP        string
	UserAgent string
	Success   bool
	CreatedAt time.Time
}
