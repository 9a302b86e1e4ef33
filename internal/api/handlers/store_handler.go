package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	repo repository.StoreRepository
}

func NewStoreHandler(repo repository.StoreRepository) *StoreHandler {
	return &StoreHandler{repo: repo}
}

func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.repo.ListStores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stores", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

func (h *StoreHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	store, err := h.repo.GetStore(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) Create(c *gin.Context) {
	var store domain.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.repo.CreateStore(c.Request.Context(), &store); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to create store", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, store)
}

func (h *StoreHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	var store domain.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	store.ID = id

	if err := h.repo.UpdateStore(c.Request.Context(), &store); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to update store", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, store)
}
