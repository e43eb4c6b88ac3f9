package entitlement

import (
	"context"
	"log/slog"

	"github.com/allstories/studiokit/pkg/plan"
	"github.com/allstories/studiokit/pkg/trial"
)

// TrialTier is the access level an active trial grants. The trial
// elevates gating decisions only; the billing tier stays whatever the
// provider reports.
const TrialTier = plan.TierCreator

// Gate answers feature access questions against the effective plan.
// Every failure mode degrades to denial or the free tier; the gate
// never returns an error to rendering code.
type Gate struct {
	matrix   plan.Matrix
	resolver *Resolver
	ledger   *trial.Ledger
	log      *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithTrialLedger enables trial elevation: while a user's trial is
// active the gate evaluates against TrialTier when that grants more
// than the billing tier. Without a ledger, trials are ignored.
func WithTrialLedger(l *trial.Ledger) GateOption {
	return func(g *Gate) {
		g.ledger = l
	}
}

// WithGateLogger sets the logger for non-fatal gate events.
func WithGateLogger(log *slog.Logger) GateOption {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGate creates a Gate over the matrix and resolver. Panics on a nil
// resolver to fail fast during initialization.
func NewGate(matrix plan.Matrix, resolver *Resolver, opts ...GateOption) *Gate {
	if resolver == nil {
		panic("entitlement: Resolver is required")
	}

	g := &Gate{
		matrix:   matrix,
		resolver: resolver,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckFeatureAccess reports whether the session may use the feature:
// the truthiness of the matrix entry for the session's gating tier.
// Comparing a numeric limit against actual usage counts is the
// caller's concern, not the gate's.
func (g *Gate) CheckFeatureAccess(ctx context.Context, sess *Session, key plan.FeatureKey) bool {
	return g.matrix.Allows(g.gatingTier(ctx, sess), key)
}

// Limit returns the concrete limit in force for the session and
// feature, for callers that do compare against usage counts.
func (g *Gate) Limit(ctx context.Context, sess *Session, key plan.FeatureKey) plan.LimitValue {
	return g.matrix.Lookup(g.gatingTier(ctx, sess), key)
}

// RequiredTier returns the lowest tier whose matrix entry satisfies the
// feature (optionally at a numeric threshold), for upsell messaging.
// Reports false when no tier satisfies it; the presenter falls back to
// generic messaging rather than crashing.
func (g *Gate) RequiredTier(key plan.FeatureKey, threshold ...plan.LimitValue) (plan.Tier, bool) {
	var required plan.LimitValue
	if len(threshold) > 0 {
		required = threshold[0]
	}
	return g.matrix.RequiredTier(key, required)
}

// gatingTier is the tier gating decisions evaluate against: the billing
// tier, elevated to TrialTier while a trial is active. Ledger failures
// skip elevation rather than failing the check.
func (g *Gate) gatingTier(ctx context.Context, sess *Session) plan.Tier {
	tier := g.resolver.EffectiveTier(ctx, sess)

	if g.ledger == nil || !sess.Authenticated() || tier.AtLeast(TrialTier) {
		return tier
	}

	active, err := g.ledger.IsActive(ctx, sess.UserID)
	if err != nil {
		g.log.WarnContext(ctx, "trial lookup failed, gating on billing tier only",
			"user_id", sess.UserID, "error", err)
		return tier
	}
	if active {
		return plan.Max(tier, TrialTier)
	}
	return tier
}
