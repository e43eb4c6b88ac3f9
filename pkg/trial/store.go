package trial

import (
	"context"

	"github.com/google/uuid"
)

// Store defines trial persistence. Implementations must enforce a
// uniqueness constraint on UserID: Create for an existing user returns
// ErrTrialExists, which the ledger resolves by re-reading. That
// constraint is the only mutual exclusion the subsystem needs.
type Store interface {
	// Get retrieves a trial by user ID.
	// Returns ErrTrialNotFound if the user has never been granted one.
	Get(ctx context.Context, userID uuid.UUID) (*Trial, error)

	// Create inserts a new trial. Returns ErrTrialExists when a trial
	// for the same user already exists (including a lost insert race).
	Create(ctx context.Context, t *Trial) error

	// Deactivate clears the Active flag. Used only by expiry
	// enforcement; trials are never deleted in normal operation.
	Deactivate(ctx context.Context, userID uuid.UUID) error
}
