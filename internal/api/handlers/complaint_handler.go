package handlers

import (
	"net/http"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/service"
	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	service *service.ComplaintService
}

func NewComplaintHandler(service *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) Submit(c *gin.Context) {
	var input service.ComplaintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	record, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to submit complaints", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *ComplaintHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), parseReportFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch complaints", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *ComplaintHandler) GetWeights(c *gin.Context) {
	weights, err := h.service.GetWeights(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch complaint weights", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"weights": weights})
}

func (h *ComplaintHandler) UpdateWeight(c *gin.Context) {
	var weight domain.ComplaintWeight
	if err := c.ShouldBindJSON(&weight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	weight.Channel = c.Param("channel")

	if err := h.service.UpdateWeight(c.Request.Context(), &weight); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to update weight", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, weight)
}
