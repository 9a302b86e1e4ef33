package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/storeops/internal/service"
	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	service *service.EvaluationService
}

func NewEvaluationHandler(service *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: service}
}

func (h *EvaluationHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch templates", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *EvaluationHandler) GetTemplateItems(c *gin.Context) {
	templateID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	items, err := h.service.GetTemplateItems(c.Request.Context(), templateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch template items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *EvaluationHandler) Submit(c *gin.Context) {
	var input service.EvaluationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to submit evaluation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *EvaluationHandler) List(c *gin.Context) {
	submissions, err := h.service.List(c.Request.Context(), parseReportFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch evaluations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *EvaluationHandler) Get(c *gin.Context) {
	submission, items, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission, "items": items})
}
