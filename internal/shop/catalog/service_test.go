package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
)

func TestServiceFallsBackToBundled(t *testing.T) {
	live := &countingSource{err: errors.New("connection refused")}
	svc := NewService(live, MockSource{})

	page, err := svc.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, live.calls)
	assert.Equal(t, 6, page.Total)
}

func TestServiceList(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   Query
		total   int
		firstID int64
		size    int
	}{
		{"default newest first", Query{}, 6, 6, 6},
		{"all tab", Query{Category: AllCategories}, 6, 6, 6},
		{"category", Query{Category: "Mode"}, 2, 6, 2},
		{"price ascending", Query{Sort: SortPriceAsc}, 6, 5, 6},
		{"price descending", Query{Sort: SortPriceDesc}, 6, 2, 6},
		{"name search", Query{Search: "  OIL "}, 1, 3, 1},
		{"second page", Query{Page: 2, PerPage: 4}, 6, 2, 2},
		{"past the end", Query{Page: 9, PerPage: 4}, 6, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, page.Total)
			require.Len(t, page.Products, tt.size)
			if tt.size > 0 {
				assert.Equal(t, tt.firstID, page.Products[0].ID)
			}
		})
	}
}

func TestServiceListPerPageBounds(t *testing.T) {
	svc := NewService(nil, nil)
	page, err := svc.List(context.Background(), Query{PerPage: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, page.PerPage)

	page, err = svc.List(context.Background(), Query{PerPage: -1})
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, page.PerPage)
	assert.Equal(t, 1, page.Page)
}

func TestServiceSearch(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	got, err := svc.Search(ctx, "serum")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got, err = svc.Search(ctx, "perhiasan")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)

	got, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Search(ctx, "<script>")
	assert.ErrorIs(t, err, ErrInvalidQuery)
	status, _ := errx.StatusOf(err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServiceLookup(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	p, err := svc.BySlug(ctx, "the-weekender-tote")
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.ID)

	p, err = svc.ByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Sculptural Gold Hoops", p.Name)

	_, err = svc.ByID(ctx, 404)
	assert.ErrorIs(t, err, ErrProductNotFound)
	status, _ := errx.StatusOf(err)
	assert.Equal(t, http.StatusNotFound, status)

	_, err = svc.BySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestServiceSanitizesDescriptions(t *testing.T) {
	live := &countingSource{products: []model.Product{{
		ID:               1,
		Name:             "Tainted",
		Description:      `<p onclick="x()">Soft<script>alert(1)</script></p>`,
		ShortDescription: `<iframe src="https://evil"></iframe><em>short</em>`,
	}}}
	p, err := NewService(live, nil).ByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "<p>Soft</p>", p.Description)
	assert.Equal(t, "<em>short</em>", p.ShortDescription)
}

func TestServicePreparesSnapshotOnce(t *testing.T) {
	live := &countingSource{products: []model.Product{
		{ID: 1, Name: "Tainted", Description: `<p onclick="x()">Soft</p>`},
		{ID: 2, Name: "Coat", Category: CategoryFashion},
	}}
	svc := NewService(live, nil)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p, err := svc.ByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "<p>Soft</p>", p.Description)
	}
	_, err := svc.List(ctx, Query{})
	require.NoError(t, err)
	_, err = svc.Search(ctx, "coat")
	require.NoError(t, err)
	assert.Equal(t, 1, live.calls)

	live.products[0].Description = "<p>Updated</p>"
	now = now.Add(SnapshotTTL)
	p, err := svc.ByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "<p>Updated</p>", p.Description)
	assert.Equal(t, 2, live.calls)

	p, err = svc.ByID(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, p.Attributes, 2)
}

func TestDefaultAttributes(t *testing.T) {
	svc := NewService(nil, nil)
	coat, err := svc.ByID(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, coat.Attributes, 2)
	assert.Equal(t, "Ukuran", coat.Attributes[0].Name)
	assert.Equal(t, map[string]string{"Ukuran": "S", "Warna": "Hitam"}, DefaultSelection(coat))

	serum, err := svc.ByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, serum.Attributes)
	assert.Nil(t, DefaultSelection(serum))

	// shared defaults are not aliased between products
	coat.Attributes[0].Options[0] = "XXS"
	again, err := svc.ByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "S", again.Attributes[0].Options[0])
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Semua", "Mode", "Kecantikan", "Perhiasan"}, NewService(nil, nil).Categories())
}
