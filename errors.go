package momentum

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("momentum: not found")
	ErrAlreadyExists = errors.New("momentum: already exists")
	ErrInvalidInput  = errors.New("momentum: invalid input")
	ErrUnauthorized  = errors.New("momentum: unauthorized")
	ErrForbidden     = errors.New("momentum: forbidden")

	// Account errors
	ErrUserNotFound       = errors.New("momentum: user not found")
	ErrEmailTaken         = errors.New("momentum: email already registered")
	ErrInvalidCredentials = errors.New("momentum: invalid credentials")

	// Task errors
	ErrTaskNotFound    = errors.New("momentum: task not found")
	ErrTaskAlreadyDone = errors.New("momentum: task already completed")

	// Focus session errors
	ErrSessionNotFound     = errors.New("momentum: session not found")
	ErrSessionAlreadyEnded = errors.New("momentum: session already ended")

	// Mood errors
	ErrUnknownMood = errors.New("momentum: unknown mood")

	// Reward ledger errors
	ErrInvalidAmount       = errors.New("momentum: credit amount must be positive")
	ErrItemNotFound        = errors.New("momentum: catalog item not found")
	ErrInsufficientBalance = errors.New("momentum: insufficient balance")
	ErrProfileNotFound     = errors.New("momentum: reward profile not found")

	// Catalog errors
	ErrCatalogEmpty   = errors.New("momentum: catalog has no items")
	ErrCatalogInvalid = errors.New("momentum: catalog definition invalid")

	// Music proxy errors
	ErrMusicUnavailable = errors.New("momentum: music service unavailable")

	// Store errors
	ErrStoreUnavailable = errors.New("momentum: store unavailable")
	ErrStoreClosed      = errors.New("momentum: store is closed")
	ErrMigrationFailed  = errors.New("momentum: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("momentum: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrProfileNotFound)
}

// IsConflict returns true if the error reports a state conflict that the
// caller should not retry unchanged.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrTaskAlreadyDone) ||
		errors.Is(err, ErrSessionAlreadyEnded)
}

// IsLedgerDeclined returns true if the error is a terminal ledger
// precondition failure. These are reported outcomes, never transient faults.
func IsLedgerDeclined(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInsufficientBalance)
}

// IsRetryable returns true if the error is temporary and the operation can
// be retried by the caller's own policy.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrMusicUnavailable)
}
