package handlers

import (
	"net/http"

	"github.com/andresuchdata/storeops/internal/service"
	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	service *service.FinanceService
}

func NewFinanceHandler(service *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

func (h *FinanceHandler) Submit(c *gin.Context) {
	var input service.FinanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	snapshot, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to submit financial snapshot", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (h *FinanceHandler) List(c *gin.Context) {
	snapshots, err := h.service.List(c.Request.Context(), parseReportFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch financial snapshots", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}
