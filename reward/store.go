package reward

import (
	"context"

	"github.com/momentumhq/momentum/id"
)

// Store is the persistence contract for the reward ledger.
//
// Implementations must serialize Credit and Debit per user: two concurrent
// Debit calls against the same profile must never both succeed when only one
// is affordable. Cross-user operations need no coordination.
type Store interface {
	// EnsureProfile upserts a zero-balance profile for the user and returns
	// the current state. It is a no-op if the profile already exists.
	EnsureProfile(ctx context.Context, userID id.UserID) (*Profile, error)

	// GetProfile returns the profile, or a not-found error if the user has
	// never touched the ledger.
	GetProfile(ctx context.Context, userID id.UserID) (*Profile, error)

	// Credit atomically increases the balance by amount (caller-validated,
	// always positive) and returns the resulting balance. The profile is
	// created if absent.
	Credit(ctx context.Context, userID id.UserID, amount int64) (int64, error)

	// Debit atomically checks balance >= p.Cost, subtracts the cost, and
	// appends p to the purchase history as one operation. It returns
	// the resulting balance, or an insufficient-balance error with no
	// mutation when the precondition fails.
	Debit(ctx context.Context, userID id.UserID, p *Purchase) (int64, error)

	// ListPurchases returns purchase records in chronological order.
	ListPurchases(ctx context.Context, userID id.UserID, opts ListOpts) ([]*Purchase, error)
}
