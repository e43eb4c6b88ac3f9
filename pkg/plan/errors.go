package plan

import "errors"

var (
	ErrUnknownTier    = errors.New("unknown plan tier")
	ErrUnknownFeature = errors.New("unknown feature key")

	ErrIncompleteMatrix    = errors.New("feature matrix does not cover every tier and feature")
	ErrNonMonotonicMatrix  = errors.New("feature matrix limits must not decrease with tier upgrades")
	ErrInvalidLimit        = errors.New("feature limit must be non-negative or Unlimited")
	ErrFailedToLoadCatalog = errors.New("failed to load plan catalog")
	ErrUnknownPriceID      = errors.New("price ID does not map to a known tier")
)
