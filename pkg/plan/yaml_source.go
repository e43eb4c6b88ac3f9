package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlCatalog is the on-disk catalog format:
//
//	tiers:
//	  free:
//	    max_stories: 2
//	    community_access: 0
//	  creator:
//	    max_stories: 20
//	    community_access: 1
//	prices:
//	  pri_creator_monthly: creator
//	  pri_professional_monthly: professional
type yamlCatalog struct {
	Tiers  map[string]map[string]int64 `yaml:"tiers"`
	Prices map[string]string           `yaml:"prices"`
}

type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source loading the catalog from a YAML file.
// The file is re-read on every Load, so a catalog refresh is a file
// change plus a reload, not a deployment.
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

func (s *yamlSource) Load(ctx context.Context) (Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
	}

	limits := make(map[Tier]Limits, len(doc.Tiers))
	for tierName, features := range doc.Tiers {
		tier, err := ParseTier(tierName)
		if err != nil {
			return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
		}
		l := make(Limits, len(features))
		for keyName, v := range features {
			key, err := ParseFeatureKey(keyName)
			if err != nil {
				return Catalog{}, errors.Join(ErrFailedToLoadCatalog,
					fmt.Errorf("tier %q: %w: %q", tierName, ErrUnknownFeature, keyName))
			}
			l[key] = v
		}
		limits[tier] = l
	}

	prices := make(map[string]Tier, len(doc.Prices))
	for priceID, tierName := range doc.Prices {
		tier, err := ParseTier(tierName)
		if err != nil {
			return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
		}
		prices[priceID] = tier
	}

	matrix, err := NewMatrix(limits)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
	}
	priceTable, err := NewPriceTable(prices)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadCatalog, err)
	}

	return Catalog{Matrix: matrix, Prices: priceTable}, nil
}
