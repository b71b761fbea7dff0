package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MetalPriceAPIProvider fetches foreign-exchange style rates from
// metalpriceapi.com. With base=GBP the endpoint returns units of metal per
// GBP, so each rate is inverted to get GBP per troy ounce.
type MetalPriceAPIProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type metalPriceAPIResponse struct {
	Success *bool              `json:"success"`
	Error   json.RawMessage    `json:"error,omitempty"`
	Rates   map[string]float64 `json:"rates"`
}

// NewMetalPriceAPIProvider creates the fx-rate provider
func NewMetalPriceAPIProvider(endpoint, apiKey string, timeout time.Duration) *MetalPriceAPIProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MetalPriceAPIProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *MetalPriceAPIProvider) Name() string {
	return "metalpriceapi"
}

// FetchLatestGBPPerOz queries all symbols in one request and inverts each
// returned rate. A non-positive rate is a data error, never silently accepted.
func (p *MetalPriceAPIProvider) FetchLatestGBPPerOz(symbols []string) (map[string]float64, error) {
	query := url.Values{}
	query.Set("api_key", p.apiKey)
	query.Set("base", "GBP")
	query.Set("currencies", strings.Join(symbols, ","))

	req, err := http.NewRequest(http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call metal price API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("metal price API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload metalPriceAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse metal price API response: %w", err)
	}

	if payload.Success != nil && !*payload.Success {
		detail := "provider returned unsuccessful response"
		if len(payload.Error) > 0 {
			detail = string(payload.Error)
		}
		return nil, fmt.Errorf("metal price API error: %s", detail)
	}

	result := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		rate, ok := payload.Rates[symbol]
		if !ok {
			continue
		}
		if rate <= 0 {
			return nil, fmt.Errorf("metal price API: invalid %s rate %v", symbol, rate)
		}
		// Invert rate (oz per GBP) -> GBP per oz.
		result[symbol] = 1 / rate
	}

	return result, nil
}
