package domain

import "time"

// Story is one ephemeral media post. ExpiresAt is set once at creation
// (CreatedAt plus the configured TTL) and never mutated afterwards.
type Story struct {
	ID          int64
	AccountID   int64
	OwnerHandle string // populated only by listing queries that join accounts
	MediaURL    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
