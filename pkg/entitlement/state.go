package entitlement

import (
	"context"

	"github.com/allstories/studiokit/pkg/plan"
	"github.com/allstories/studiokit/pkg/trial"
)

// SubscriptionState is the session-scoped bundle views depend on. It is
// built per session and passed explicitly rather than living in a
// process-wide singleton, which keeps the gate testable in isolation
// and cached state from leaking between users.
type SubscriptionState struct {
	sess   *Session
	gate   *Gate
	ledger *trial.Ledger
}

// NewSubscriptionState binds a session to the gate and (optionally) the
// trial ledger. Panics on a nil gate to fail fast during initialization.
func NewSubscriptionState(sess *Session, gate *Gate, ledger *trial.Ledger) *SubscriptionState {
	if gate == nil {
		panic("entitlement: Gate is required")
	}
	return &SubscriptionState{sess: sess, gate: gate, ledger: ledger}
}

// Session returns the bound session.
func (s *SubscriptionState) Session() *Session {
	return s.sess
}

// EffectiveTier returns the billing tier in force for this session.
func (s *SubscriptionState) EffectiveTier(ctx context.Context) plan.Tier {
	return s.gate.resolver.EffectiveTier(ctx, s.sess)
}

// CheckFeatureAccess reports whether this session may use the feature.
func (s *SubscriptionState) CheckFeatureAccess(ctx context.Context, key plan.FeatureKey) bool {
	return s.gate.CheckFeatureAccess(ctx, s.sess, key)
}

// Limit returns the concrete limit in force for the feature.
func (s *SubscriptionState) Limit(ctx context.Context, key plan.FeatureKey) plan.LimitValue {
	return s.gate.Limit(ctx, s.sess, key)
}

// RequiredTier returns the minimal tier unlocking the feature,
// for upsell surfaces.
func (s *SubscriptionState) RequiredTier(key plan.FeatureKey, threshold ...plan.LimitValue) (plan.Tier, bool) {
	return s.gate.RequiredTier(key, threshold...)
}

// Trial returns this user's trial, or trial.ErrTrialNotFound.
func (s *SubscriptionState) Trial(ctx context.Context) (*trial.Trial, error) {
	if s.ledger == nil || !s.sess.Authenticated() {
		return nil, trial.ErrTrialNotFound
	}
	return s.ledger.Get(ctx, s.sess.UserID)
}

// EnsureTrial grants the one-time trial, returning the existing record
// when one was already granted.
func (s *SubscriptionState) EnsureTrial(ctx context.Context) (*trial.Trial, error) {
	if s.ledger == nil || !s.sess.Authenticated() {
		return nil, trial.ErrTrialNotFound
	}
	return s.ledger.Ensure(ctx, s.sess.UserID)
}

// Refresh drops the cached tier so the next read re-verifies billing
// state. Called after a checkout redirect lands.
func (s *SubscriptionState) Refresh(ctx context.Context) {
	s.gate.resolver.Invalidate(ctx, s.sess)
}
