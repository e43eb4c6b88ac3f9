package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allstories/studiokit/pkg/plan"
)

const testCatalogYAML = `
tiers:
  free:
    max_stories: 2
    max_characters: 5
    ai_prompts: 10
    community_access: 0
    custom_ai: 0
    max_groups: 0
  creator:
    max_stories: 20
    max_characters: 50
    ai_prompts: 200
    community_access: 1
    custom_ai: 1
    max_groups: 3
  professional:
    max_stories: -1
    max_characters: -1
    ai_prompts: -1
    community_access: 1
    custom_ai: 5
    max_groups: -1
prices:
  pri_creator_monthly: creator
  pri_professional_monthly: professional
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("valid catalog", func(t *testing.T) {
		t.Parallel()

		src := plan.NewYAMLSource(writeCatalog(t, testCatalogYAML))
		catalog, err := src.Load(context.Background())
		require.NoError(t, err)

		assert.EqualValues(t, 200, catalog.Matrix.Lookup(plan.TierCreator, plan.FeatureAIPrompts))
		assert.EqualValues(t, plan.Unlimited, catalog.Matrix.Lookup(plan.TierProfessional, plan.FeatureMaxStories))

		tier, ok := catalog.Prices.TierForPrice("pri_creator_monthly")
		require.True(t, ok)
		assert.Equal(t, plan.TierCreator, tier)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		src := plan.NewYAMLSource(filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadCatalog)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		src := plan.NewYAMLSource(writeCatalog(t, "tiers: [this is not a map"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadCatalog)
	})

	t.Run("unknown feature key", func(t *testing.T) {
		t.Parallel()

		src := plan.NewYAMLSource(writeCatalog(t, `
tiers:
  free:
    teleport: 1
`))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadCatalog)
	})

	t.Run("unknown tier in prices", func(t *testing.T) {
		t.Parallel()

		src := plan.NewYAMLSource(writeCatalog(t, `
tiers:
  free:
    max_stories: 2
    max_characters: 5
    ai_prompts: 10
    community_access: 0
    custom_ai: 0
    max_groups: 0
  creator:
    max_stories: 20
    max_characters: 50
    ai_prompts: 200
    community_access: 1
    custom_ai: 1
    max_groups: 3
  professional:
    max_stories: -1
    max_characters: -1
    ai_prompts: -1
    community_access: 1
    custom_ai: 5
    max_groups: -1
prices:
  pri_x: platinum
`))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, plan.ErrFailedToLoadCatalog)
	})
}

func TestInMemSource_Load(t *testing.T) {
	t.Parallel()

	src := plan.NewInMemSource(validLimits(), map[string]plan.Tier{
		"pri_creator_monthly": plan.TierCreator,
	})

	catalog, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, catalog.Matrix.Allows(plan.TierCreator, plan.FeatureCommunityAccess))

	tier, ok := catalog.Prices.TierForPrice("pri_creator_monthly")
	require.True(t, ok)
	assert.Equal(t, plan.TierCreator, tier)
}
