package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jwinter110022/jewellery-pricing-app/config"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/controller"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/provider"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/router"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/scheduler"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting jewellery pricing server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed default settings (no-op when already present)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	settingRepo := repository.NewSettingRepository(db.GetDB())
	priceRepo := repository.NewMetalPriceRepository(db.GetDB())
	stoneRepo := repository.NewStoneRepository(db.GetDB())
	quoteRepo := repository.NewQuoteRepository(db.GetDB())
	workshopRepo := repository.NewWorkshopRepository(db.GetDB())
	projectRepo := repository.NewProjectRepository(db.GetDB())

	// Initialize the spot price provider
	priceProvider, err := provider.New(&cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize price provider", err, map[string]interface{}{
			"provider": cfg.Provider.Name,
		})
	}
	logger.Info("Price provider initialized", map[string]interface{}{
		"provider": priceProvider.Name(),
	})

	// Initialize services
	priceService := service.NewPriceService(priceRepo, settingRepo, priceProvider)
	settingService := service.NewSettingService(settingRepo)
	stoneService := service.NewStoneService(stoneRepo)
	quoteService := service.NewQuoteService(quoteRepo, stoneRepo, settingRepo, priceService)
	workshopService := service.NewWorkshopService(workshopRepo, settingRepo, priceService)
	projectService := service.NewProjectService(projectRepo, quoteRepo)

	// Initialize controllers
	priceController := controller.NewPriceController(priceService)
	settingController := controller.NewSettingController(settingService)
	stoneController := controller.NewStoneController(stoneService)
	quoteController := controller.NewQuoteController(quoteService)
	workshopController := controller.NewWorkshopController(workshopService)
	projectController := controller.NewProjectController(projectService)

	// Setup router
	r := router.NewRouter(
		priceController,
		settingController,
		stoneController,
		quoteController,
		workshopController,
		projectController,
		cfg,
	)
	engine := r.Setup()

	// Start the background price refresh
	var priceScheduler *scheduler.PriceScheduler
	if cfg.Scheduler.Enabled {
		priceScheduler = scheduler.NewPriceScheduler(priceService, cfg.Scheduler.CronSpec)
		if err := priceScheduler.Start(); err != nil {
			logger.Fatal("Failed to start price scheduler", err)
		}
		defer priceScheduler.Stop()
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
