package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"eduscale-server-go/internal/apikey"
	"eduscale-server-go/internal/handler"
	"eduscale-server-go/internal/middleware"
	"eduscale-server-go/internal/registry"
	"eduscale-server-go/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize services
	regionService := registry.NewRegionService(db)
	schoolService := registry.NewSchoolService(db)
	keyService := apikey.NewAPIKeyService(db)

	// Initialize handlers
	regionHandler := handler.NewRegionHandler(regionService)
	schoolHandler := handler.NewSchoolHandler(schoolService)
	keyHandler := handler.NewAPIKeyHandler(keyService)

	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.CORSAllowOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}

	opts := handler.RouterOptions{
		GlobalMiddleware: []gin.HandlerFunc{
			cors.New(corsConfig),
			middleware.RequestAudit(db),
		},
		HealthCheck: handler.Healthz(db),
	}
	if cfg.APIKeyAuthEnabled {
		opts.APIKeyAuth = middleware.APIKeyAuth(keyService)
	}
	if cfg.AdminToken != "" {
		opts.AdminAuth = middleware.AdminAuth(cfg.AdminToken)
	} else {
		log.Println("ADMIN_TOKEN not set, admin routes disabled")
	}

	router := handler.SetupRouter(regionHandler, schoolHandler, keyHandler, opts)

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
