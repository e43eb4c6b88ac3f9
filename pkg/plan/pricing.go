package plan

import "maps"

// PriceTable maps billing provider price IDs to the tier they purchase.
// Adding a plan/price pair is a data change, not a code change: construct
// the table from configuration or a catalog Source.
type PriceTable struct {
	tiers map[string]Tier
}

// NewPriceTable builds a PriceTable from a price-ID-to-tier mapping,
// deep-copying the input. Unknown tiers are rejected.
func NewPriceTable(prices map[string]Tier) (PriceTable, error) {
	for priceID, tier := range prices {
		if !tier.Valid() {
			return PriceTable{}, ErrUnknownTier
		}
		if priceID == "" {
			return PriceTable{}, ErrUnknownPriceID
		}
	}
	return PriceTable{tiers: maps.Clone(prices)}, nil
}

// TierForPrice resolves a provider price ID to a tier.
// Unknown price IDs report false; callers treat that as TierFree.
func (p PriceTable) TierForPrice(priceID string) (Tier, bool) {
	tier, ok := p.tiers[priceID]
	return tier, ok
}

// PriceForTier returns a price ID purchasing the given tier, preferring
// none for TierFree. Used by checkout to translate an upsell target back
// into a provider price. Returns false when the tier has no price.
func (p PriceTable) PriceForTier(tier Tier) (string, bool) {
	for priceID, t := range p.tiers {
		if t == tier {
			return priceID, true
		}
	}
	return "", false
}
