package trial

import "errors"

var (
	ErrTrialNotFound = errors.New("trial not found")
	ErrTrialExists   = errors.New("trial already exists")

	// ErrStoreUnavailable wraps transport/storage failures. Callers may
	// retry; the ledger never converts it into a fake trial.
	ErrStoreUnavailable = errors.New("trial store unavailable")
)
