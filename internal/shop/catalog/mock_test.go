package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSourceWooShape(t *testing.T) {
	products, err := MockSource{}.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	serum := products[0]
	assert.Equal(t, "luminous-silk-serum", serum.Slug)
	assert.True(t, strings.HasPrefix(serum.Description, "<p>"))
	assert.True(t, strings.HasSuffix(serum.Description, "</p>"))
	assert.True(t, strings.HasSuffix(serum.ShortDescription, "..."))
	assert.Equal(t, "4.9", serum.AverageRating)
	assert.Equal(t, 1240, serum.RatingCount)
	assert.Equal(t, serum.RatingCount, serum.Reviews)
	require.Len(t, serum.Categories, 1)
	assert.Equal(t, "kecantikan", serum.Categories[0].Slug)
	require.Len(t, serum.Images, 1)
	assert.Equal(t, serum.Image, serum.Images[0].Src)
	assert.False(t, serum.OnSale)
	assert.Equal(t, serum.Price, serum.RegularPrice)
	assert.NotNil(t, serum.Tags)

	coat := products[1]
	assert.True(t, coat.OnSale)
	assert.Equal(t, int64(6500000), coat.RegularPrice)
	assert.Equal(t, int64(4850000), coat.Price)

	assert.Equal(t, "5", products[2].AverageRating)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-weekender-tote", Slugify("The Weekender Tote"))
	assert.Equal(t, "solo", Slugify("Solo"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc...", excerpt("abc", 5))
	assert.Equal(t, "ab...", excerpt("abc", 2))
	assert.Equal(t, "ké...", excerpt("kéé", 2))
	assert.Equal(t, "...", excerpt("", 3))
}
