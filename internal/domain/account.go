package domain

import "time"

// Account is the domain model for a registered user.
type Account struct {
	ID           int64
	Handle       string
	PasswordHash string
	CreatedAt    time.Time
}
