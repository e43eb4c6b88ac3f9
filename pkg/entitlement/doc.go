// Package entitlement decides what a session is allowed to do: it
// resolves the effective subscription tier from verified billing state
// and answers feature access questions against the plan matrix.
//
// The design goal is that gating can never be the cause of a hard UI
// failure. The resolver is fail-open to the free tier: a billing
// verification error, timeout, or malformed response logs a warning and
// resolves to free. The gate returns plain booleans, degrading to
// denial on any internal failure.
//
// Two tiers interact here. The billing tier is what the payment
// provider reports and is what EffectiveTier returns; an active trial
// elevates gating decisions to TrialTier but never the billing tier
// itself, so upsell surfaces always see honest billing state.
//
// Resolutions are cached per user (in-process LRU by default, Redis
// for multi-instance deployments) and invalidated by checkout
// redirects and billing webhooks.
//
// # Usage
//
//	resolver := entitlement.NewResolver(verifier)
//	gate := entitlement.NewGate(plan.DefaultMatrix(), resolver,
//		entitlement.WithTrialLedger(ledger))
//
//	state := entitlement.NewSubscriptionState(sess, gate, ledger)
//	if !state.CheckFeatureAccess(ctx, plan.FeatureCommunityAccess) {
//		required, _ := state.RequiredTier(plan.FeatureCommunityAccess)
//		// show upsell for `required`
//	}
package entitlement
