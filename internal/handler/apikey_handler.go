package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eduscale-server-go/internal/apikey"
	"eduscale-server-go/pkg/model"
)

// APIKeyHandler handles admin API key management requests
type APIKeyHandler struct {
	keyService *apikey.APIKeyService
}

// NewAPIKeyHandler creates a new API key handler
func NewAPIKeyHandler(keyService *apikey.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keyService: keyService}
}

// CreateAPIKey handles POST /admin/api-keys. The response carries the
// plaintext secret once; it cannot be recovered afterwards.
func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	var req model.APIKeyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.keyService.IssueKey(req)
	if err != nil {
		log.Printf("Error issuing api key: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue API key"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListAPIKeys handles GET /admin/api-keys
func (h *APIKeyHandler) ListAPIKeys(c *gin.Context) {
	keys, err := h.keyService.ListKeys()
	if err != nil {
		log.Printf("Error listing api keys: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list API keys"})
		return
	}

	c.JSON(http.StatusOK, keys)
}

// RevokeAPIKey handles POST /admin/api-keys/:id/revoke
func (h *APIKeyHandler) RevokeAPIKey(c *gin.Context) {
	id := c.Param("id")

	if err := h.keyService.RevokeKey(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		log.Printf("Error revoking api key %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke API key"})
		return
	}

	c.Status(http.StatusOK)
}
