package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// RouterOptions controls which guards and cross-cutting middleware the router
// attaches. A nil APIKeyAuth leaves the resource routes open; a nil AdminAuth
// disables the admin group entirely.
type RouterOptions struct {
	GlobalMiddleware []gin.HandlerFunc
	APIKeyAuth       gin.HandlerFunc
	AdminAuth        gin.HandlerFunc
	HealthCheck      gin.HandlerFunc
}

// SetupRouter registers every route on a fresh engine. Routes are an explicit
// table here rather than spread across packages.
func SetupRouter(regions *RegionHandler, schools *SchoolHandler, keys *APIKeyHandler, opts RouterOptions) *gin.Engine {
	router := gin.Default()
	router.Use(opts.GlobalMiddleware...)

	if opts.HealthCheck != nil {
		router.GET("/healthz", opts.HealthCheck)
	}

	resources := router.Group("/")
	if opts.APIKeyAuth != nil {
		resources.Use(opts.APIKeyAuth)
	}
	{
		resources.POST("/regions", regions.CreateRegion)
		resources.GET("/regions", regions.GetRegions)
		resources.GET("/regions/:id", regions.GetRegion)

		resources.POST("/schools", schools.CreateSchool)
		resources.GET("/schools", schools.GetSchools)
		resources.GET("/schools/:id", schools.GetSchool)
	}

	if opts.AdminAuth != nil {
		admin := router.Group("/admin")
		admin.Use(opts.AdminAuth)
		{
			admin.POST("/api-keys", keys.CreateAPIKey)
			admin.GET("/api-keys", keys.ListAPIKeys)
			admin.POST("/api-keys/:id/revoke", keys.RevokeAPIKey)
		}
	}

	return router
}

// Healthz reports liveness of the service and its database
func Healthz(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
