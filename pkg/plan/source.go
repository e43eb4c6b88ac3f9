package plan

import (
	"context"
	"errors"
	"maps"
)

// Catalog bundles the plan data the gating system needs: the feature
// matrix and the provider price mapping.
type Catalog struct {
	Matrix Matrix
	Prices PriceTable
}

// Source defines how the plan catalog is loaded. Implementations must
// return validated, self-consistent data; the loader fails fast otherwise.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

type inMemSource struct {
	limits map[Tier]Limits
	prices map[string]Tier
}

// NewInMemSource returns a Source serving a static catalog. Input maps
// are deep-copied so later mutation cannot affect loaded catalogs.
func NewInMemSource(limits map[Tier]Limits, prices map[string]Tier) Source {
	cp := make(map[Tier]Limits, len(limits))
	for tier, l := range limits {
		cp[tier] = maps.Clone(l)
	}
	return &inMemSource{limits: cp, prices: maps.Clone(prices)}
}

func (s *inMemSource) Load(ctx context.Context) (Catalog, error) {
	matrix, err := NewMatrix(s.limits)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
	}
	prices, err := NewPriceTable(s.prices)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
	}
	return Catalog{Matrix: matrix, Prices: prices}, nil
}
