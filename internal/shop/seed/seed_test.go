package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledData(t *testing.T) {
	products, err := Products()
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Luminous Silk Serum", products[0].Name)
	assert.Equal(t, int64(1250000), products[0].Price)
	assert.Equal(t, int64(6500000), products[1].OriginalPrice)

	posts, err := Posts()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "the-art-of-slow-living", posts[0].ID)
	assert.NotEmpty(t, posts[0].Content)

	// callers get copies
	products[0].Name = "mutated"
	again, err := Products()
	require.NoError(t, err)
	assert.Equal(t, "Luminous Silk Serum", again[0].Name)
}
