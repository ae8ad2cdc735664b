package analytics

import (
	"context"
	"time"

	"github.com/momentumhq/momentum/id"
)

// Store is the read-only aggregation contract. Each backend computes the
// summary natively (aggregation pipeline, SQL aggregates, or in-memory
// scan) rather than pulling raw rows through the application.
type Store interface {
	Summarize(ctx context.Context, userID id.UserID, from, to time.Time) (*Summary, error)
}
