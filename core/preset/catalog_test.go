package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartmedia-cost/core/types"
)

func TestDescriptorTier(t *testing.T) {
	assert.Equal(t, types.TierHD, Descriptor{Height: 1080}.Tier(720))
	assert.Equal(t, types.TierHD, Descriptor{Height: 720}.Tier(720))
	assert.Equal(t, types.TierSD, Descriptor{Height: 480}.Tier(720))
	assert.Equal(t, types.TierAudio, Descriptor{Height: 0}.Tier(720))
}

func TestCatalogFilter(t *testing.T) {
	catalog := Catalog{
		{ID: "a", Height: 1080},
		{ID: "b", Height: 480},
		{ID: "c", Height: 0},
	}

	filtered := catalog.Filter([]string{"c", "a", "missing"})
	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)

	assert.Nil(t, catalog.Filter(nil))
	assert.Nil(t, catalog.Filter([]string{}))
}

func TestCatalogTiersDeduplicates(t *testing.T) {
	catalog := Catalog{
		{ID: "a", Height: 1080},
		{ID: "b", Height: 720},
		{ID: "c", Height: 480},
		{ID: "d", Height: 360},
		{ID: "e", Height: 0},
	}

	tiers := catalog.Tiers(720)
	assert.Equal(t, []types.Tier{types.TierAudio, types.TierSD, types.TierHD}, tiers)
}

func TestCatalogEmpty(t *testing.T) {
	assert.True(t, Catalog{}.Empty())
	assert.True(t, Catalog(nil).Empty())
	assert.False(t, Catalog{{ID: "a"}}.Empty())
}
