package pomodoro

import (
	"context"

	"github.com/momentumhq/momentum/id"
)

// Store is the persistence contract for focus sessions.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*Session, error)
	List(ctx context.Context, userID id.UserID, opts ListOpts) ([]*Session, error)

	// Finish transitions a running session to the given terminal status,
	// recording focusMinutes and the end time. Finishing a session that has
	// already ended is a reported conflict, never a double credit.
	Finish(ctx context.Context, userID id.UserID, sessionID id.SessionID, status Status, focusMinutes int) (*Session, error)
}
