package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduscale-server-go/internal/registry"
	"eduscale-server-go/pkg/model"
)

// RegionHandler handles region-related HTTP requests
type RegionHandler struct {
	regionService *registry.RegionService
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(regionService *registry.RegionService) *RegionHandler {
	return &RegionHandler{regionService: regionService}
}

// CreateRegion handles POST /regions. Success is a bare 200 with an empty
// body; every failure is a bare 500 with the detail logged for operators,
// never returned to the caller.
func (h *RegionHandler) CreateRegion(c *gin.Context) {
	var req model.RegionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error decoding region create request: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.regionService.CreateRegion(req); err != nil {
		log.Printf("Error creating region: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// GetRegions handles GET /regions
func (h *RegionHandler) GetRegions(c *gin.Context) {
	regions, err := h.regionService.GetRegions()
	if err != nil {
		log.Printf("Error fetching regions: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, regions)
}

// GetRegion handles GET /regions/:id
func (h *RegionHandler) GetRegion(c *gin.Context) {
	id := c.Param("id")

	region, err := h.regionService.GetRegion(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Printf("Error fetching region %s: %v", id, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, region)
}
