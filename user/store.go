package user

import (
	"context"
	"time"

	"github.com/momentumhq/momentum/id"
)

// Store is the persistence contract for accounts.
type Store interface {
	// Create inserts a new account. A duplicate email is a reported
	// conflict, not an overwrite.
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, userID id.UserID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error

	// ListActive returns the IDs of users who completed at least one focus
	// session at or after since. Used by the daily bonus job.
	ListActive(ctx context.Context, since time.Time) ([]id.UserID, error)
}
