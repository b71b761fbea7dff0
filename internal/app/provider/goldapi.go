package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// GoldAPIConfig configures the direct price-per-symbol provider
type GoldAPIConfig struct {
	BaseURL       string
	FallbackURLs  []string
	APIKey        string
	Timeout       time.Duration
	RetryAttempts int
}

// GoldAPIProvider fetches a direct GBP price per symbol from gold-api.com
// style endpoints: GET {base}/{symbol} returning {"price": ..., "currency": "GBP"}.
//
// Several base URLs may be configured. Each one gets its own retry budget with
// exponential backoff on transient HTTP failures; only when the budget is
// exhausted does the next base URL get tried.
type GoldAPIProvider struct {
	baseURLs      []string
	apiKey        string
	retryAttempts int
	client        *http.Client
}

type goldAPIResponse struct {
	Symbol   string   `json:"symbol"`
	Currency string   `json:"currency"`
	Price    *float64 `json:"price"` // pointer so an absent field is detectable
}

// NewGoldAPIProvider creates the direct price provider
func NewGoldAPIProvider(cfg GoldAPIConfig) *GoldAPIProvider {
	urls := make([]string, 0, 1+len(cfg.FallbackURLs))
	seen := make(map[string]bool)
	for _, raw := range append([]string{cfg.BaseURL}, cfg.FallbackURLs...) {
		cleaned := strings.TrimRight(strings.TrimSpace(raw), "/")
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		urls = append(urls, cleaned)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.RetryAttempts
	if retries < 0 {
		retries = 0
	}

	return &GoldAPIProvider{
		baseURLs:      urls,
		apiKey:        cfg.APIKey,
		retryAttempts: retries,
		client:        &http.Client{Timeout: timeout},
	}
}

func (p *GoldAPIProvider) Name() string {
	return "goldapi"
}

// FetchLatestGBPPerOz fetches each requested symbol in turn. Any data error
// (missing price, wrong currency, non-positive value) fails the whole call
// without retrying; transient HTTP failures are retried per base URL.
func (p *GoldAPIProvider) FetchLatestGBPPerOz(symbols []string) (map[string]float64, error) {
	if len(p.baseURLs) == 0 {
		return nil, fmt.Errorf("gold API: no base URLs configured")
	}

	result := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		payload, err := p.fetchSymbol(symbol)
		if err != nil {
			return nil, err
		}

		if payload.Price == nil {
			return nil, fmt.Errorf("gold API: missing price field for %s", symbol)
		}

		currency := strings.ToUpper(payload.Currency)
		if currency != "" && currency != "GBP" {
			return nil, fmt.Errorf("gold API returned %s for %s, expected GBP pricing", currency, symbol)
		}

		if *payload.Price <= 0 {
			return nil, fmt.Errorf("gold API: invalid %s price %v", symbol, *payload.Price)
		}

		result[symbol] = *payload.Price
	}

	return result, nil
}

func (p *GoldAPIProvider) fetchSymbol(symbol string) (*goldAPIResponse, error) {
	var lastErr error
	for _, baseURL := range p.baseURLs {
		payload, err := p.fetchWithRetry(baseURL, symbol)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		logger.Warn("Gold API base URL exhausted, trying next", map[string]interface{}{
			"base_url": baseURL,
			"symbol":   symbol,
			"error":    err.Error(),
		})
	}
	return nil, fmt.Errorf("gold API request failed for %s across configured URLs: %w", symbol, lastErr)
}

func (p *GoldAPIProvider) fetchWithRetry(baseURL, symbol string) (*goldAPIResponse, error) {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt <= p.retryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		payload, retryable, err := p.doRequest(baseURL, symbol)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, lastErr
}

// doRequest performs one HTTP call. The second return value reports whether
// the failure is transient (connection error or a retryable status code).
func (p *GoldAPIProvider) doRequest(baseURL, symbol string) (*goldAPIResponse, bool, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s", baseURL, symbol), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("x-access-token", p.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("failed to call gold API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, isRetryableStatus(resp.StatusCode),
			fmt.Errorf("gold API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload goldAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, fmt.Errorf("failed to parse gold API response: %w", err)
	}

	return &payload, false, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
