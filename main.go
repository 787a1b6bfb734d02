package main

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rescue-dashboard/config"
	"rescue-dashboard/handlers"
	"rescue-dashboard/middleware"
	"rescue-dashboard/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warnf(".env file not found, using system environment variables")
	}

	cfg := config.Load()

	databaseService, err := services.NewDatabaseService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database service: %v", err)
	}
	defer databaseService.Close()

	log.Infof("Initializing database schema...")
	if err := databaseService.InitializeSchema(); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	websocketHub := services.NewWebSocketHub()
	go websocketHub.Start()
	defer websocketHub.Stop()

	reportHandler := handlers.NewReportHandler(databaseService, websocketHub, cfg.MapMaxPins)
	websocketHandler := handlers.NewWebSocketHandler(websocketHub)

	router := gin.Default()
	router.SetTrustedProxies(cfg.TrustedProxies)

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public endpoints
	router.GET("/health", reportHandler.HealthHandler)
	router.GET("/api/track/:id", reportHandler.TrackReport)

	// Authenticated endpoints
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/reports", reportHandler.GetReports)
		api.POST("/reports", reportHandler.CreateReport)
		api.GET("/reports/:id", reportHandler.GetReport)
		api.PUT("/reports/:id/status",
			middleware.RequireRole(handlers.RoleRescueTeam, handlers.RoleAdmin),
			reportHandler.UpdateReportStatus)
		api.GET("/map", reportHandler.GetMap)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(handlers.RoleAdmin))
		{
			admin.GET("/stats", reportHandler.GetStats)
			admin.GET("/users", reportHandler.GetUsers)
		}
	}

	ws := router.Group("/ws")
	ws.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		ws.GET("/reports", websocketHandler.ListenReports)
		ws.GET("/health", websocketHandler.HealthCheck)
	}

	log.Infof("Starting rescue dashboard service on %s:%s", cfg.Host, cfg.Port)
	router.Run(cfg.Host + ":" + cfg.Port)
}
