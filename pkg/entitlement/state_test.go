package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allstories/studiokit/pkg/billing"
	"github.com/allstories/studiokit/pkg/entitlement"
	"github.com/allstories/studiokit/pkg/plan"
	"github.com/allstories/studiokit/pkg/trial"
)

func TestSubscriptionState(t *testing.T) {
	t.Parallel()

	t.Run("bundles gate access for a session", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore())
		v := &stubVerifier{result: billing.VerifiedPlan{Tier: plan.TierCreator}}
		gate := entitlement.NewGate(plan.DefaultMatrix(), entitlement.NewResolver(v),
			entitlement.WithTrialLedger(ledger))
		sess := userSession()

		state := entitlement.NewSubscriptionState(sess, gate, ledger)

		assert.Equal(t, plan.TierCreator, state.EffectiveTier(context.Background()))
		assert.True(t, state.CheckFeatureAccess(context.Background(), plan.FeatureCommunityAccess))
		assert.EqualValues(t, 50, state.Limit(context.Background(), plan.FeatureMaxCharacters))

		required, ok := state.RequiredTier(plan.FeatureMaxGroups, 10)
		require.True(t, ok)
		assert.Equal(t, plan.TierProfessional, required)
	})

	t.Run("trial lifecycle through state", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore())
		v := &stubVerifier{result: billing.VerifiedPlan{Tier: plan.TierFree}}
		gate := entitlement.NewGate(plan.DefaultMatrix(), entitlement.NewResolver(v),
			entitlement.WithTrialLedger(ledger))

		state := entitlement.NewSubscriptionState(userSession(), gate, ledger)

		_, err := state.Trial(context.Background())
		assert.ErrorIs(t, err, trial.ErrTrialNotFound)

		created, err := state.EnsureTrial(context.Background())
		require.NoError(t, err)

		got, err := state.Trial(context.Background())
		require.NoError(t, err)
		assert.Equal(t, created.StartsAt, got.StartsAt)
	})

	t.Run("refresh picks up a checkout upgrade", func(t *testing.T) {
		t.Parallel()

		v := &stubVerifier{result: billing.VerifiedPlan{Tier: plan.TierFree}}
		gate := entitlement.NewGate(plan.DefaultMatrix(), entitlement.NewResolver(v))

		state := entitlement.NewSubscriptionState(userSession(), gate, nil)
		require.Equal(t, plan.TierFree, state.EffectiveTier(context.Background()))

		v.set(billing.VerifiedPlan{Tier: plan.TierProfessional}, nil)
		state.Refresh(context.Background())

		assert.Equal(t, plan.TierProfessional, state.EffectiveTier(context.Background()))
	})

	t.Run("anonymous session has no trial", func(t *testing.T) {
		t.Parallel()

		ledger := trial.NewLedger(trial.NewMemoryStore())
		v := &stubVerifier{result: billing.VerifiedPlan{Tier: plan.TierFree}}
		gate := entitlement.NewGate(plan.DefaultMatrix(), entitlement.NewResolver(v),
			entitlement.WithTrialLedger(ledger))

		state := entitlement.NewSubscriptionState(&entitlement.Session{}, gate, ledger)

		_, err := state.EnsureTrial(context.Background())
		assert.ErrorIs(t, err, trial.ErrTrialNotFound)
	})
}
