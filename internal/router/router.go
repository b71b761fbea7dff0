package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Jwinter110022/jewellery-pricing-app/config"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/controller"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/middleware"
)

type Router struct {
	priceController    *controller.PriceController
	settingController  *controller.SettingController
	stoneController    *controller.StoneController
	quoteController    *controller.QuoteController
	workshopController *controller.WorkshopController
	projectController  *controller.ProjectController
	config             *config.Config
}

func NewRouter(
	priceController *controller.PriceController,
	settingController *controller.SettingController,
	stoneController *controller.StoneController,
	quoteController *controller.QuoteController,
	workshopController *controller.WorkshopController,
	projectController *controller.ProjectController,
	cfg *config.Config,
) *Router {
	return &Router{
		priceController:    priceController,
		settingController:  settingController,
		stoneController:    stoneController,
		quoteController:    quoteController,
		workshopController: workshopController,
		projectController:  projectController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Jewellery pricing API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		prices := v1.Group("/prices")
		{
			prices.GET("", r.priceController.GetPrices)
			prices.GET("/:symbol", r.priceController.GetPriceBySymbol)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", r.settingController.GetSettings)
			settings.PUT("", r.settingController.UpdateSettings)
		}

		stones := v1.Group("/stones")
		{
			stones.GET("", r.stoneController.ListStones)
			stones.GET("/:id", r.stoneController.GetStoneByID)
			stones.POST("", r.stoneController.CreateStone)
			stones.PUT("/:id", r.stoneController.UpdateStone)
			stones.DELETE("/:id", r.stoneController.DeleteStone)
			stones.POST("/import", r.stoneController.ImportStones)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.POST("/commission", r.quoteController.PriceCommission)
			quotes.GET("/commission", r.quoteController.ListCommissionQuotes)
			quotes.GET("/commission/:id", r.quoteController.GetCommissionQuoteByID)
			quotes.DELETE("/commission", r.quoteController.ClearCommissionQuotes)

			quotes.POST("/workshop", r.workshopController.PriceWorkshop)
			quotes.GET("/workshop", r.workshopController.ListWorkshopQuotes)
		}

		templates := v1.Group("/workshop-templates")
		{
			templates.POST("", r.workshopController.SaveTemplate)
			templates.GET("", r.workshopController.ListTemplates)
			templates.DELETE("/:id", r.workshopController.DeleteTemplate)
		}

		projects := v1.Group("/projects")
		{
			projects.POST("", r.projectController.RecordProject)
			projects.GET("", r.projectController.ListProjects)
			projects.GET("/:id", r.projectController.GetProjectByID)
			projects.GET("/prefill/:id", r.projectController.PrefillCostRows)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
