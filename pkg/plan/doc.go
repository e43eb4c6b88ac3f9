// Package plan defines the subscription tiers, gated feature keys, and the
// static feature matrix that drives every access decision in the
// entitlement system.
//
// The matrix is pure data: a validated, immutable Tier-to-Limits table.
// Validation happens once at construction (NewMatrix), so Lookup is a
// total function with no error path. The invariant enforced is
// monotonicity: a higher tier never grants less of any feature than a
// lower one, with Unlimited (-1) dominating every finite limit.
//
// Provider price IDs map to tiers through PriceTable, keeping the
// price-to-plan relationship a data change rather than a code change.
// Catalogs load through the Source interface, with in-memory and YAML
// file implementations provided.
//
// # Usage
//
//	matrix := plan.DefaultMatrix()
//	if matrix.Allows(plan.TierCreator, plan.FeatureCommunityAccess) {
//		// render the community feed
//	}
//
//	tier, ok := matrix.RequiredTier(plan.FeatureCustomAI, 1)
//	// tier == plan.TierCreator, ok == true
package plan
