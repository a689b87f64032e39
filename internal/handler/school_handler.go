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

// SchoolHandler handles school-related HTTP requests
type SchoolHandler struct {
	schoolService *registry.SchoolService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolService *registry.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService}
}

// CreateSchool handles POST /schools. A dangling region reference surfaces as
// a foreign key violation from the database and maps to 500 like any other
// storage failure.
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req model.SchoolCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error decoding school create request: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.schoolService.CreateSchool(req); err != nil {
		log.Printf("Error creating school: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// GetSchools handles GET /schools
func (h *SchoolHandler) GetSchools(c *gin.Context) {
	schools, err := h.schoolService.GetSchools()
	if err != nil {
		log.Printf("Error fetching schools: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, schools)
}

// GetSchool handles GET /schools/:id
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id := c.Param("id")

	school, err := h.schoolService.GetSchool(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.Status(http.StatusNotFound)
			return
		}
		log.Printf("Error fetching school %s: %v", id, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, school)
}
