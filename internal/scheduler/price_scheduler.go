package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

// PriceScheduler refreshes cached spot prices on a cron schedule
type PriceScheduler struct {
	cron         *cron.Cron
	priceService service.PriceService
	cronSpec     string
}

// NewPriceScheduler creates the spot price scheduler
func NewPriceScheduler(priceService service.PriceService, cronSpec string) *PriceScheduler {
	return &PriceScheduler{
		cron:         cron.New(),
		priceService: priceService,
		cronSpec:     cronSpec,
	}
}

// Start registers the refresh job and starts the cron loop
func (s *PriceScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		logger.Info("Starting scheduled spot price refresh")

		_, warning := s.priceService.GetPrices(model.AllMetalSymbols, true)
		if warning != "" {
			logger.Warn("Scheduled spot price refresh finished with warning", map[string]interface{}{
				"warning": warning,
			})
			return
		}

		logger.Info("Scheduled spot price refresh completed")
	})

	if err != nil {
		logger.Error("Failed to add cron job for spot price refresh", err, map[string]interface{}{
			"cron_spec": s.cronSpec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Spot price scheduler started", map[string]interface{}{
		"cron_spec": s.cronSpec,
	})

	return nil
}

// Stop stops the scheduler
func (s *PriceScheduler) Stop() {
	logger.Info("Stopping spot price scheduler...")
	s.cron.Stop()
	logger.Info("Spot price scheduler stopped")
}
