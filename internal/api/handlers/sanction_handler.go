package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/andresuchdata/storeops/internal/service"
	"github.com/gin-gonic/gin"
)

type SanctionHandler struct {
	service *service.SanctionService
}

func NewSanctionHandler(service *service.SanctionService) *SanctionHandler {
	return &SanctionHandler{service: service}
}

func (h *SanctionHandler) Create(c *gin.Context) {
	var input service.SanctionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	record, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to create sanction", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *SanctionHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	records, err := h.service.List(c.Request.Context(), parseReportFilter(c), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sanctions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sanctions": records})
}

func (h *SanctionHandler) Revoke(c *gin.Context) {
	if err := h.service.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sanction not found or already revoked"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke sanction", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}
