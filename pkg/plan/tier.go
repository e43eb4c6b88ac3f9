package plan

import "fmt"

// Tier identifies a subscription tier. Tiers form a total order of
// increasing capability: free < creator < professional.
type Tier string

const (
	TierFree         Tier = "free"
	TierCreator      Tier = "creator"
	TierProfessional Tier = "professional"
)

// Tiers lists all tiers in ascending capability order.
// Order matters: RequiredTier relies on it to find the minimal tier.
var Tiers = []Tier{TierFree, TierCreator, TierProfessional}

var tierRank = map[Tier]int{
	TierFree:         0,
	TierCreator:      1,
	TierProfessional: 2,
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// Cmp compares two tiers by capability order.
// Returns -1 if t < other, 0 if equal, 1 if t > other.
func (t Tier) Cmp(other Tier) int {
	a, b := tierRank[t], tierRank[other]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether t grants at least the capability of other.
func (t Tier) AtLeast(other Tier) bool {
	return t.Cmp(other) >= 0
}

// Max returns the more capable of the two tiers.
func Max(a, b Tier) Tier {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// ParseTier converts a string into a Tier.
// Unknown values return ErrUnknownTier so callers can fall back to TierFree.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return TierFree, fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}
