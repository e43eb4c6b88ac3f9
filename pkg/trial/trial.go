package trial

import (
	"time"

	"github.com/google/uuid"
)

// TrialDays is the fixed length of the free trial window.
const TrialDays = 5

// Trial is a user's one-time free trial grant. UserID is the primary
// key: the storage layer enforces at most one trial per user.
type Trial struct {
	UserID   uuid.UUID
	StartsAt time.Time
	EndsAt   time.Time
	Active   bool
}

// New builds a trial starting at now with the standard window.
func New(userID uuid.UUID, now time.Time) *Trial {
	start := now.UTC()
	return &Trial{
		UserID:   userID,
		StartsAt: start,
		EndsAt:   start.AddDate(0, 0, TrialDays),
		Active:   true,
	}
}

// ExpiredAt reports whether the trial window has passed at the given time.
// Whether an expired trial still grants access is the ledger's policy
// decision, not the entity's.
func (t *Trial) ExpiredAt(now time.Time) bool {
	return now.UTC().After(t.EndsAt)
}

// Expired reports whether the trial window has passed.
func (t *Trial) Expired() bool {
	return t.ExpiredAt(time.Now())
}

// DaysRemainingAt returns whole days left in the trial at a given time,
// rounding partial days up. Returns 0 once the window has passed.
func (t *Trial) DaysRemainingAt(now time.Time) int {
	remaining := t.EndsAt.Sub(now.UTC())
	if remaining <= 0 {
		return 0
	}
	days := remaining.Hours() / 24
	return int(days + 0.5)
}

// DaysRemaining returns whole days left in the trial.
func (t *Trial) DaysRemaining() int {
	return t.DaysRemainingAt(time.Now())
}
