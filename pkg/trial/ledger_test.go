package trial_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allstories/studiokit/pkg/trial"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestLedger_Ensure(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates trial on first call", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore(), trial.WithClock(fixedClock(now)))
		userID := uuid.New()

		tr, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, userID, tr.UserID)
		assert.Equal(t, now, tr.StartsAt)
		assert.Equal(t, now.AddDate(0, 0, 5), tr.EndsAt)
		assert.True(t, tr.Active)
	})

	t.Run("idempotent across repeated calls", func(t *testing.T) {
		t.Parallel()

		clock := now
		ledger := trial.NewLedger(trial.NewMemoryStore(),
			trial.WithClock(func() time.Time { return clock }))
		userID := uuid.New()

		first, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		// Time moves on; the original start date must not.
		clock = clock.AddDate(0, 0, 30)

		for range 5 {
			again, err := ledger.Ensure(context.Background(), userID)
			require.NoError(t, err)
			assert.Equal(t, first.StartsAt, again.StartsAt)
			assert.Equal(t, first.EndsAt, again.EndsAt)
		}
	})

	t.Run("lost insert race resolves by re-read", func(t *testing.T) {
		t.Parallel()

		store := &racingStore{Store: trial.NewMemoryStore()}
		ledger := trial.NewLedger(store, trial.WithClock(fixedClock(now)))
		userID := uuid.New()

		// The racing store makes the first Get miss, then inserts a
		// competing row before the ledger's own insert lands.
		store.race = func() {
			_ = store.Store.Create(context.Background(), trial.New(userID, now.Add(-time.Hour)))
		}

		tr, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		// The winner's record is returned, not a second row.
		assert.Equal(t, now.Add(-time.Hour), tr.StartsAt)
	})

	t.Run("concurrent callers end with one trial", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore(), trial.WithClock(fixedClock(now)))
		userID := uuid.New()

		var wg sync.WaitGroup
		results := make([]*trial.Trial, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tr, err := ledger.Ensure(context.Background(), userID)
				require.NoError(t, err)
				results[i] = tr
			}()
		}
		wg.Wait()

		for _, tr := range results {
			assert.Equal(t, results[0].StartsAt, tr.StartsAt)
		}
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(&failingStore{err: trial.ErrStoreUnavailable})

		_, err := ledger.Ensure(context.Background(), uuid.New())
		assert.ErrorIs(t, err, trial.ErrStoreUnavailable)
	})

	t.Run("notifier failure does not fail creation", func(t *testing.T) {
		t.Parallel()

		n := &stubNotifier{err: errors.New("smtp down")}
		ledger := trial.NewLedger(trial.NewMemoryStore(),
			trial.WithClock(fixedClock(now)), trial.WithNotifier(n))

		tr, err := ledger.Ensure(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.True(t, tr.Active)
		assert.Equal(t, 1, n.calls)
	})

	t.Run("notifier fires only on creation", func(t *testing.T) {
		t.Parallel()

		n := &stubNotifier{}
		ledger := trial.NewLedger(trial.NewMemoryStore(),
			trial.WithClock(fixedClock(now)), trial.WithNotifier(n))
		userID := uuid.New()

		_, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)
		_, err = ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		assert.Equal(t, 1, n.calls)
	})
}

func TestLedger_IsActive(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	afterExpiry := start.AddDate(0, 0, 10)

	t.Run("no trial is not active", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore())
		active, err := ledger.IsActive(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("without enforcement an expired trial stays active", func(t *testing.T) {
		t.Parallel()

		clock := start
		ledger := trial.NewLedger(trial.NewMemoryStore(),
			trial.WithClock(func() time.Time { return clock }))
		userID := uuid.New()

		_, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		clock = afterExpiry
		active, err := ledger.IsActive(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("with enforcement an expired trial deactivates", func(t *testing.T) {
		t.Parallel()

		clock := start
		store := trial.NewMemoryStore()
		ledger := trial.NewLedger(store,
			trial.WithClock(func() time.Time { return clock }),
			trial.WithExpiryEnforcement(true))
		userID := uuid.New()

		_, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		clock = afterExpiry
		active, err := ledger.IsActive(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, active)

		// The flag is flipped in storage, not just computed.
		tr, err := store.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, tr.Active)
	})

	t.Run("with enforcement a running trial stays active", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore(),
			trial.WithClock(fixedClock(start)),
			trial.WithExpiryEnforcement(true))
		userID := uuid.New()

		_, err := ledger.Ensure(context.Background(), userID)
		require.NoError(t, err)

		active, err := ledger.IsActive(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, active)
	})
}

// racingStore simulates a concurrent tab winning the insert race: the
// first Get reports no trial, then the race hook inserts before Create.
type racingStore struct {
	trial.Store
	race func()
	mu   sync.Mutex
	gets int
}

func (s *racingStore) Get(ctx context.Context, userID uuid.UUID) (*trial.Trial, error) {
	s.mu.Lock()
	first := s.gets == 0
	s.gets++
	race := s.race
	s.mu.Unlock()

	if first {
		if race != nil {
			defer race()
		}
		return nil, trial.ErrTrialNotFound
	}
	return s.Store.Get(ctx, userID)
}

type failingStore struct {
	err error
}

func (s *failingStore) Get(ctx context.Context, userID uuid.UUID) (*trial.Trial, error) {
	return nil, s.err
}

func (s *failingStore) Create(ctx context.Context, t *trial.Trial) error {
	return s.err
}

func (s *failingStore) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

type stubNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *stubNotifier) TrialStarted(ctx context.Context, tr *trial.Trial) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}
