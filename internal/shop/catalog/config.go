package catalog

import "time"

// Config selects and tunes the product source. Live WooCommerce is used only
// when both URL and consumer key are set.
type Config struct {
	BaseURL        string        `envconfig:"WC_URL"`
	ConsumerKey    string        `envconfig:"WC_KEY"`
	ConsumerSecret string        `envconfig:"WC_SECRET"`
	Timeout        time.Duration `envconfig:"WC_TIMEOUT" default:"10s"`
	PerPage        int           `envconfig:"WC_PER_PAGE" default:"100"`
	MaxPages       int           `envconfig:"WC_MAX_PAGES" default:"20"`
	CacheTTL       time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

// LiveEnabled reports whether a WooCommerce store is configured.
func (c Config) LiveEnabled() bool {
	return c.BaseURL != "" && c.ConsumerKey != ""
}
