package mood

import (
	"context"

	"github.com/momentumhq/momentum/id"
)

// Store is the persistence contract for the mood log.
type Store interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context, userID id.UserID, opts ListOpts) ([]*Entry, error)
}
