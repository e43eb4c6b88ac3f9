package plan

import (
	"errors"
	"fmt"
	"maps"
)

// LimitValue is the per-feature limit a tier grants. Boolean features
// encode as 0/1; Unlimited removes the cap entirely.
type LimitValue = int64

// Unlimited indicates no limit for a feature (-1 chosen for SQL compatibility).
const Unlimited LimitValue = -1

// Limits maps each feature key to the limit a single tier grants.
type Limits map[FeatureKey]LimitValue

// Matrix is the immutable tier-to-limits table driving all gating
// decisions. Construct it with NewMatrix, which validates totality and
// monotonicity once so Lookup can stay a pure, error-free function.
type Matrix struct {
	limits map[Tier]Limits
}

// NewMatrix builds a Matrix from per-tier limits, deep-copying the input.
// It fails if any tier is missing, any feature is undefined for a tier,
// any limit is negative (other than Unlimited), or a higher tier grants
// less than a lower one.
func NewMatrix(limits map[Tier]Limits) (Matrix, error) {
	cp := make(map[Tier]Limits, len(limits))
	for tier, l := range limits {
		if !tier.Valid() {
			return Matrix{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
		}
		cp[tier] = maps.Clone(l)
	}

	m := Matrix{limits: cp}
	if err := m.validate(); err != nil {
		return Matrix{}, err
	}
	return m, nil
}

// MustMatrix is NewMatrix that panics on invalid input. Intended for
// package-level defaults where misconfiguration should prevent startup.
func MustMatrix(limits map[Tier]Limits) Matrix {
	m, err := NewMatrix(limits)
	if err != nil {
		panic(fmt.Sprintf("plan: invalid feature matrix: %v", err))
	}
	return m
}

// Lookup returns the limit the given tier grants for the feature.
// Total over valid tiers and keys: Matrix construction guarantees every
// pair is defined. Unknown inputs resolve to 0 (deny) rather than panic.
func (m Matrix) Lookup(tier Tier, key FeatureKey) LimitValue {
	l, ok := m.limits[tier]
	if !ok {
		return 0
	}
	v, ok := l[key]
	if !ok {
		return 0
	}
	return v
}

// Allows reports whether the tier grants any access to the feature:
// true for Unlimited or any positive limit.
func (m Matrix) Allows(tier Tier, key FeatureKey) bool {
	v := m.Lookup(tier, key)
	return v == Unlimited || v > 0
}

// Satisfies reports whether the tier's limit covers the required value.
// Unlimited satisfies everything.
func (m Matrix) Satisfies(tier Tier, key FeatureKey, required LimitValue) bool {
	v := m.Lookup(tier, key)
	return v == Unlimited || v >= required
}

// RequiredTier returns the lowest tier whose limit for the feature
// satisfies required, or false when no tier does. With required <= 0 it
// degenerates to "lowest tier with any access".
func (m Matrix) RequiredTier(key FeatureKey, required LimitValue) (Tier, bool) {
	for _, tier := range Tiers {
		if required <= 0 {
			if m.Allows(tier, key) {
				return tier, true
			}
			continue
		}
		if m.Satisfies(tier, key, required) {
			return tier, true
		}
	}
	return "", false
}

// validate checks totality and per-feature monotonicity across the tier order.
func (m Matrix) validate() error {
	for _, tier := range Tiers {
		l, ok := m.limits[tier]
		if !ok {
			return fmt.Errorf("%w: missing tier %q", ErrIncompleteMatrix, tier)
		}
		for _, key := range FeatureKeys {
			v, ok := l[key]
			if !ok {
				return fmt.Errorf("%w: tier %q missing feature %q", ErrIncompleteMatrix, tier, key)
			}
			if v < Unlimited {
				return fmt.Errorf("%w: tier %q feature %q = %d", ErrInvalidLimit, tier, key, v)
			}
		}
	}

	for i := 1; i < len(Tiers); i++ {
		lower, higher := Tiers[i-1], Tiers[i]
		for _, key := range FeatureKeys {
			lo := m.limits[lower][key]
			hi := m.limits[higher][key]
			if lo == Unlimited && hi != Unlimited {
				return monotonicityErr(lower, higher, key, lo, hi)
			}
			if lo != Unlimited && hi != Unlimited && hi < lo {
				return monotonicityErr(lower, higher, key, lo, hi)
			}
		}
	}
	return nil
}

func monotonicityErr(lower, higher Tier, key FeatureKey, lo, hi LimitValue) error {
	return errors.Join(ErrNonMonotonicMatrix,
		fmt.Errorf("feature %q: %s=%d > %s=%d", key, lower, lo, higher, hi))
}

// DefaultMatrix returns the production feature matrix for All Stories Studio.
func DefaultMatrix() Matrix {
	return MustMatrix(map[Tier]Limits{
		TierFree: {
			FeatureMaxStories:      2,
			FeatureMaxCharacters:   5,
			FeatureAIPrompts:       10,
			FeatureCommunityAccess: 0,
			FeatureCustomAI:        0,
			FeatureMaxGroups:       0,
		},
		TierCreator: {
			FeatureMaxStories:      20,
			FeatureMaxCharacters:   50,
			FeatureAIPrompts:       200,
			FeatureCommunityAccess: 1,
			FeatureCustomAI:        1,
			FeatureMaxGroups:       3,
		},
		TierProfessional: {
			FeatureMaxStories:      Unlimited,
			FeatureMaxCharacters:   Unlimited,
			FeatureAIPrompts:       Unlimited,
			FeatureCommunityAccess: 1,
			FeatureCustomAI:        5,
			FeatureMaxGroups:       Unlimited,
		},
	})
}
