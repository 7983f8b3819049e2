package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wooServer(t *testing.T, pages map[string][]map[string]any, total string) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, productsPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ck_test", q.Get("consumer_key"))
		assert.Equal(t, "cs_test", q.Get("consumer_secret"))
		assert.Equal(t, "publish", q.Get("status"))
		seen = append(seen, q.Get("page"))

		w.Header().Set(totalHeader, total)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pages[q.Get("page")])
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func testConfig(url string) Config {
	return Config{BaseURL: url, ConsumerKey: "ck_test", ConsumerSecret: "cs_test", Timeout: time.Second, PerPage: 2, MaxPages: 5}
}

func TestWooSourcePagesThroughCatalog(t *testing.T) {
	pages := map[string][]map[string]any{
		"1": {
			{"id": 10, "name": "Linen Shirt", "slug": "linen-shirt", "price": "350000.75", "regular_price": "400000", "on_sale": true,
				"average_rating": "4.50", "rating_count": 12, "total_sales": "7",
				"images":     []map[string]any{{"id": 1, "src": "https://img/linen.jpg"}},
				"categories": []map[string]any{{"id": 3, "name": "Mode", "slug": "mode"}}},
			{"id": 11, "name": "Bare Item", "slug": "bare-item", "price": "", "average_rating": "n/a", "total_sales": 3},
		},
		"2": {
			{"id": 12, "name": "Pearl Studs", "slug": "pearl-studs", "price": "500000"},
		},
	}
	srv, seen := wooServer(t, pages, "3")
	cfg := testConfig(srv.URL + "/")

	products, err := NewWooSource(NewWooClient(cfg, nil), cfg).Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"1", "2"}, *seen)

	shirt := products[0]
	assert.Equal(t, int64(350000), shirt.Price)
	assert.Equal(t, int64(400000), shirt.OriginalPrice)
	assert.Equal(t, "https://img/linen.jpg", shirt.Image)
	assert.Equal(t, "Mode", shirt.Category)
	assert.InDelta(t, 4.5, shirt.Rating, 0.0001)
	assert.Equal(t, 12, shirt.Reviews)
	assert.Equal(t, 7, shirt.TotalSales)

	bare := products[1]
	assert.Equal(t, int64(0), bare.Price)
	assert.Equal(t, placeholderImage, bare.Image)
	assert.Equal(t, uncategorized, bare.Category)
	assert.Equal(t, 0.0, bare.Rating)
	assert.NotNil(t, bare.Tags)
}

func TestWooSourceStopsAtMaxPages(t *testing.T) {
	full := []map[string]any{{"id": 1, "name": "a"}, {"id": 2, "name": "b"}}
	pages := map[string][]map[string]any{"1": full, "2": full, "3": full}
	srv, seen := wooServer(t, pages, "100")
	cfg := testConfig(srv.URL)
	cfg.MaxPages = 2

	products, err := NewWooSource(NewWooClient(cfg, nil), cfg).Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, []string{"1", "2"}, *seen)
}

func TestWooClientNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"woocommerce_rest_cannot_view"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewWooClient(testConfig(srv.URL), nil).FetchProducts(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestWooClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := NewWooClient(testConfig(srv.URL), nil).FetchProducts(context.Background(), 1, 10)
	assert.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int64{"": 0, "abc": 0, "1250000": 1250000, "99.99": 99, " 42 ": 42}
	for in, want := range cases {
		assert.Equal(t, want, parsePrice(in), in)
	}
}

func TestConfigLiveEnabled(t *testing.T) {
	assert.False(t, Config{}.LiveEnabled())
	assert.False(t, Config{BaseURL: "https://shop"}.LiveEnabled())
	assert.True(t, Config{BaseURL: "https://shop", ConsumerKey: "ck"}.LiveEnabled())
}
