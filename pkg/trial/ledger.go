package trial

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Notifier receives trial lifecycle events. Failures are logged and
// never surfaced to the caller: a missed welcome email must not fail
// trial creation.
type Notifier interface {
	TrialStarted(ctx context.Context, t *Trial) error
}

// Ledger manages the once-per-user trial lifecycle on top of a Store.
type Ledger struct {
	store         Store
	now           func() time.Time
	log           *slog.Logger
	notifier      Notifier
	enforceExpiry bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger used for non-fatal ledger events.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

// WithNotifier registers a lifecycle notifier, e.g. the trial welcome email.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) {
		l.notifier = n
	}
}

// WithExpiryEnforcement controls whether an expired trial window
// deactivates the trial. Historically the product treated trials as
// always active once created; the switch makes that an explicit,
// testable policy instead of implicit behavior.
func WithExpiryEnforcement(enabled bool) Option {
	return func(l *Ledger) {
		l.enforceExpiry = enabled
	}
}

// NewLedger creates a Ledger. Panics on a nil store to fail fast during
// initialization.
func NewLedger(store Store, opts ...Option) *Ledger {
	if store == nil {
		panic("trial: Store is required")
	}

	l := &Ledger{
		store: store,
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get returns the user's trial, or ErrTrialNotFound. Read-only.
func (l *Ledger) Get(ctx context.Context, userID uuid.UUID) (*Trial, error) {
	return l.store.Get(ctx, userID)
}

// Ensure returns the user's trial, creating it on first call. Idempotent:
// repeated calls return the original record unchanged. When two callers
// race to create, the storage uniqueness constraint picks a winner and
// the loser re-reads, so exactly one row exists per user either way.
func (l *Ledger) Ensure(ctx context.Context, userID uuid.UUID) (*Trial, error) {
	existing, err := l.store.Get(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrTrialNotFound) {
		return nil, err
	}

	t := New(userID, l.now())
	if err := l.store.Create(ctx, t); err != nil {
		if errors.Is(err, ErrTrialExists) {
			// Lost the race: another session created it first.
			return l.store.Get(ctx, userID)
		}
		return nil, err
	}

	if l.notifier != nil {
		if err := l.notifier.TrialStarted(ctx, t); err != nil {
			l.log.WarnContext(ctx, "trial started notification failed",
				"user_id", userID, "error", err)
		}
	}

	return t, nil
}

// IsActive reports whether the user currently has an active trial.
// Without expiry enforcement any created trial counts as active (the
// historical product policy); with it, the window is checked and an
// expired trial is deactivated in storage best-effort.
func (l *Ledger) IsActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	t, err := l.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrTrialNotFound) {
			return false, nil
		}
		return false, err
	}

	if !t.Active {
		return false, nil
	}

	if !l.enforceExpiry {
		return true, nil
	}

	if t.ExpiredAt(l.now()) {
		if err := l.store.Deactivate(ctx, userID); err != nil {
			l.log.WarnContext(ctx, "failed to deactivate expired trial",
				"user_id", userID, "error", err)
		}
		return false, nil
	}

	return true, nil
}
