package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jwinter110022/jewellery-pricing-app/config"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported price provider")
	ErrMissingAPIKey       = errors.New("missing price provider API key")
)

// MetalPriceProvider fetches live spot prices normalized to GBP per troy ounce
type MetalPriceProvider interface {
	Name() string
	FetchLatestGBPPerOz(symbols []string) (map[string]float64, error)
}

// New builds the configured provider. An unsupported name or a missing
// credential is a configuration error, surfaced immediately and never retried.
func New(cfg *config.ProviderConfig) (MetalPriceProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "metalpriceapi":
		if cfg.MetalPriceAPIKey == "" {
			return nil, fmt.Errorf("%w: METALPRICEAPI_KEY is not set", ErrMissingAPIKey)
		}
		return NewMetalPriceAPIProvider(cfg.MetalPriceAPIURL, cfg.MetalPriceAPIKey, cfg.Timeout), nil
	case "goldapi":
		return NewGoldAPIProvider(GoldAPIConfig{
			BaseURL:       cfg.GoldAPIBaseURL,
			FallbackURLs:  cfg.GoldAPIFallbacks,
			APIKey:        cfg.GoldAPIKey,
			Timeout:       cfg.Timeout,
			RetryAttempts: cfg.RetryAttempts,
		}), nil
	}
	return nil, fmt.Errorf("%w: %q (use 'goldapi' or 'metalpriceapi')", ErrUnsupportedProvider, cfg.Name)
}
