package i

import (
	dmn "github.com/beka-birhanu/shifting-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns dmn.ErrUserNotFound if the user does not exist.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns dmn.ErrUserNotFound if the user does not exist.
	ByUsername(username string) (*dmn.User, error)
}

// SessionRecordRepo persists the outcome of finished maze sessions.
type SessionRecordRepo interface {
	// Save inserts or replaces the record with the same ID.
	Save(record *dmn.SessionRecord) error

	// ByPlayer returns up to limit records of a player, most recent first.
	ByPlayer(playerID uuid.UUID, limit int64) ([]*dmn.SessionRecord, error)
}
