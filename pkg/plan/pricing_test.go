package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allstories/studiokit/pkg/plan"
)

func TestPriceTable(t *testing.T) {
	t.Parallel()

	prices := map[string]plan.Tier{
		"pri_creator_monthly":      plan.TierCreator,
		"pri_creator_annual":       plan.TierCreator,
		"pri_professional_monthly": plan.TierProfessional,
	}

	t.Run("resolves known price IDs", func(t *testing.T) {
		t.Parallel()

		table, err := plan.NewPriceTable(prices)
		require.NoError(t, err)

		tier, ok := table.TierForPrice("pri_creator_annual")
		require.True(t, ok)
		assert.Equal(t, plan.TierCreator, tier)

		tier, ok = table.TierForPrice("pri_professional_monthly")
		require.True(t, ok)
		assert.Equal(t, plan.TierProfessional, tier)
	})

	t.Run("unknown price ID reports false", func(t *testing.T) {
		t.Parallel()

		table, err := plan.NewPriceTable(prices)
		require.NoError(t, err)

		_, ok := table.TierForPrice("pri_retired_plan")
		assert.False(t, ok)
	})

	t.Run("price for tier", func(t *testing.T) {
		t.Parallel()

		table, err := plan.NewPriceTable(prices)
		require.NoError(t, err)

		priceID, ok := table.PriceForTier(plan.TierProfessional)
		require.True(t, ok)
		assert.Equal(t, "pri_professional_monthly", priceID)

		_, ok = table.PriceForTier(plan.TierFree)
		assert.False(t, ok)
	})

	t.Run("rejects invalid tier", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewPriceTable(map[string]plan.Tier{"pri_x": "platinum"})
		assert.ErrorIs(t, err, plan.ErrUnknownTier)
	})

	t.Run("rejects empty price ID", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewPriceTable(map[string]plan.Tier{"": plan.TierCreator})
		assert.ErrorIs(t, err, plan.ErrUnknownPriceID)
	})
}
