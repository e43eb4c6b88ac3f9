package entitlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allstories/studiokit/pkg/billing"
	"github.com/allstories/studiokit/pkg/plan"
)

// DefaultVerifyTimeout bounds the billing verification call so a slow
// provider can never block rendering.
const DefaultVerifyTimeout = 10 * time.Second

// Resolver computes the effective billing tier for a session. It is
// fail-open to free: any verification failure, timeout, or malformed
// response resolves to TierFree with a logged warning, never an error.
// Results are cached per user until explicitly invalidated (checkout
// success, webhook) or the cache TTL passes.
type Resolver struct {
	verifier billing.Verifier
	cache    TierCache
	timeout  time.Duration
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithVerifyTimeout overrides the billing verification timeout.
func WithVerifyTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithTierCache replaces the default in-process cache, e.g. with the
// Redis-backed implementation for multi-instance deployments.
func WithTierCache(c TierCache) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithResolverLogger sets the logger for verification warnings.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a Resolver. Panics on a nil verifier to fail fast
// during initialization.
func NewResolver(verifier billing.Verifier, opts ...ResolverOption) *Resolver {
	if verifier == nil {
		panic("entitlement: billing.Verifier is required")
	}

	r := &Resolver{
		verifier: verifier,
		cache:    NewMemoryTierCache(1024, 15*time.Minute),
		timeout:  DefaultVerifyTimeout,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EffectiveTier resolves the billing tier in force for the session.
// Anonymous sessions short-circuit to free with no network calls. A
// trial never inflates the result: trial elevation is the gate's
// concern, keeping the billing tier honest for upsell decisions.
func (r *Resolver) EffectiveTier(ctx context.Context, sess *Session) plan.Tier {
	if !sess.Authenticated() {
		return plan.TierFree
	}

	if tier, ok := r.cache.Get(ctx, sess.UserID); ok {
		return tier
	}

	vctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	verified, err := r.verifier.Verify(vctx, sess.Credential)
	if err != nil {
		// Failures are not cached: the next call retries verification.
		r.log.WarnContext(ctx, "billing verification failed, defaulting to free tier",
			"user_id", sess.UserID, "error", err)
		return plan.TierFree
	}

	r.cache.Set(ctx, sess.UserID, verified.Tier)
	return verified.Tier
}

// Invalidate drops the cached tier for a session so the next resolution
// re-verifies. Called after a successful checkout redirect.
func (r *Resolver) Invalidate(ctx context.Context, sess *Session) {
	if sess.Authenticated() {
		r.InvalidateUser(ctx, sess.UserID)
	}
}

// InvalidateUser drops the cached tier by user ID. Billing webhooks use
// this form since they carry no session.
func (r *Resolver) InvalidateUser(ctx context.Context, userID uuid.UUID) {
	r.cache.Invalidate(ctx, userID)
}
