package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/storeops/internal/api/handlers"
	"github.com/andresuchdata/storeops/internal/api/middleware"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/andresuchdata/storeops/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	StoreRepo         repository.StoreRepository
	EvaluationService *service.EvaluationService
	ComplaintService  *service.ComplaintService
	FinanceService    *service.FinanceService
	SanctionService   *service.SanctionService
	ReportService     *service.ReportService
	ExportService     *service.ExportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.StoreRepo != nil {
		storeHandler := handlers.NewStoreHandler(services.StoreRepo)
		storeGroup := apiGroup.Group("/stores")
		{
			storeGroup.GET("", storeHandler.List)
			storeGroup.POST("", storeHandler.Create)
			storeGroup.GET("/:id", storeHandler.Get)
			storeGroup.PUT("/:id", storeHandler.Update)
		}
	}

	if services.EvaluationService != nil {
		evaluationHandler := handlers.NewEvaluationHandler(services.EvaluationService)
		evaluationGroup := apiGroup.Group("/evaluations")
		{
			evaluationGroup.GET("/templates", evaluationHandler.ListTemplates)
			evaluationGroup.GET("/templates/:id/items", evaluationHandler.GetTemplateItems)
			evaluationGroup.POST("", evaluationHandler.Submit)
			evaluationGroup.GET("", evaluationHandler.List)
			evaluationGroup.GET("/:id", evaluationHandler.Get)
		}
	}

	if services.ComplaintService != nil {
		complaintHandler := handlers.NewComplaintHandler(services.ComplaintService)
		complaintGroup := apiGroup.Group("/complaints")
		{
			complaintGroup.POST("", complaintHandler.Submit)
			complaintGroup.GET("", complaintHandler.List)
			complaintGroup.GET("/weights", complaintHandler.GetWeights)
			complaintGroup.PUT("/weights/:channel", complaintHandler.UpdateWeight)
		}
	}

	if services.FinanceService != nil {
		financeHandler := handlers.NewFinanceHandler(services.FinanceService)
		financeGroup := apiGroup.Group("/financials")
		{
			financeGroup.POST("", financeHandler.Submit)
			financeGroup.GET("", financeHandler.List)
		}
	}

	if services.SanctionService != nil {
		sanctionHandler := handlers.NewSanctionHandler(services.SanctionService)
		sanctionGroup := apiGroup.Group("/sanctions")
		{
			sanctionGroup.POST("", sanctionHandler.Create)
			sanctionGroup.GET("", sanctionHandler.List)
			sanctionGroup.PATCH("/:id/revoke", sanctionHandler.Revoke)
		}
	}

	if services.ReportService != nil {
		reportHandler := handlers.NewReportHandler(services.ReportService, services.ExportService)
		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("/stores/:id/scorecard", reportHandler.Scorecard)
			reportGroup.GET("/dashboard", reportHandler.Dashboard)
			reportGroup.GET("/export", reportHandler.Export)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
