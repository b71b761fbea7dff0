package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/provider"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// PriceService is the spot price cache with its freshness policy
type PriceService interface {
	// GetPrices returns the cached record per requested symbol plus a warning.
	// It never returns an error: provider failures are absorbed, the
	// last-known-good prices are kept and the warning describes the failure.
	// The warning must be shown to the end user verbatim.
	GetPrices(symbols []model.MetalSymbol, forceRefresh bool) (map[model.MetalSymbol]model.MetalPrice, string)
}

type priceService struct {
	priceRepo   repository.MetalPriceRepository
	settingRepo repository.SettingRepository
	provider    provider.MetalPriceProvider

	// Serializes refreshes so two concurrent requests cannot interleave
	// writes for the same symbol.
	refreshMu sync.Mutex
}

// NewPriceService creates the price cache service
func NewPriceService(
	priceRepo repository.MetalPriceRepository,
	settingRepo repository.SettingRepository,
	priceProvider provider.MetalPriceProvider,
) PriceService {
	return &priceService{
		priceRepo:   priceRepo,
		settingRepo: settingRepo,
		provider:    priceProvider,
	}
}

func (s *priceService) GetPrices(symbols []model.MetalSymbol, forceRefresh bool) (map[model.MetalSymbol]model.MetalPrice, string) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	settings, err := s.settingRepo.GetAll()
	if err != nil {
		// No TTL available; treat everything as stale and try the provider.
		logger.Warn("Failed to load settings for price cache, forcing refresh", map[string]interface{}{
			"error": err.Error(),
		})
		forceRefresh = true
	}

	cached, err := s.priceRepo.FindBySymbols(symbols)
	if err != nil {
		logger.Error("Failed to read price cache", err)
		cached = map[model.MetalSymbol]model.MetalPrice{}
		forceRefresh = true
	}

	now := time.Now().UTC()
	needRefresh := forceRefresh
	for _, symbol := range symbols {
		record, ok := cached[symbol]
		if !ok || !record.IsFresh(now, settings.PriceCacheTTLMinutes) {
			needRefresh = true
			break
		}
	}

	if !needRefresh {
		return cached, ""
	}

	// Any stale symbol refreshes all requested symbols together, so a single
	// provider call keeps the whole set in step.
	fresh, err := s.provider.FetchLatestGBPPerOz(symbolStrings(symbols))
	if err != nil {
		logger.Warn("Price provider failed, serving cached prices", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		if len(cached) > 0 {
			return cached, fmt.Sprintf("Price API unavailable. Using cached prices. Details: %v", err)
		}
		return cached, fmt.Sprintf("Price API unavailable and no cached prices yet. Details: %v", err)
	}

	for symbol, price := range fresh {
		record := model.MetalPrice{
			Symbol:        model.MetalSymbol(symbol),
			PriceGBPPerOz: price,
			FetchedAt:     now,
			Provider:      s.provider.Name(),
		}
		if err := s.priceRepo.Upsert(&record); err != nil {
			logger.Error("Failed to cache refreshed price", err, map[string]interface{}{
				"symbol": symbol,
			})
			continue
		}
		cached[record.Symbol] = record
	}

	logger.Info("Refreshed spot prices", map[string]interface{}{
		"provider": s.provider.Name(),
		"count":    len(fresh),
	})

	return cached, ""
}

func symbolStrings(symbols []model.MetalSymbol) []string {
	result := make([]string, len(symbols))
	for i, symbol := range symbols {
		result[i] = string(symbol)
	}
	return result
}
