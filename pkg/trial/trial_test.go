package trial_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/allstories/studiokit/pkg/trial"
)

func TestNew(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	start := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	tr := trial.New(userID, start)

	assert.Equal(t, userID, tr.UserID)
	assert.Equal(t, start, tr.StartsAt)
	assert.Equal(t, start.AddDate(0, 0, 5), tr.EndsAt)
	assert.True(t, tr.Active)
}

func TestTrial_ExpiredAt(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tr := trial.New(uuid.New(), start)

	assert.False(t, tr.ExpiredAt(start))
	assert.False(t, tr.ExpiredAt(start.AddDate(0, 0, 4)))
	assert.False(t, tr.ExpiredAt(tr.EndsAt)) // boundary: not yet past
	assert.True(t, tr.ExpiredAt(tr.EndsAt.Add(time.Second)))
}

func TestTrial_DaysRemainingAt(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tr := trial.New(uuid.New(), start)

	assert.Equal(t, 5, tr.DaysRemainingAt(start))
	assert.Equal(t, 2, tr.DaysRemainingAt(start.AddDate(0, 0, 3)))
	// Partial days round up.
	assert.Equal(t, 3, tr.DaysRemainingAt(start.AddDate(0, 0, 2).Add(6*time.Hour)))
	assert.Equal(t, 0, tr.DaysRemainingAt(start.AddDate(0, 0, 6)))
}
