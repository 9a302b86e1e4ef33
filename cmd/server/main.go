package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/storeops/internal/api"
	"github.com/andresuchdata/storeops/internal/cache"
	"github.com/andresuchdata/storeops/internal/config"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/andresuchdata/storeops/internal/repository/postgres"
	"github.com/andresuchdata/storeops/internal/service"
	"github.com/andresuchdata/storeops/internal/storage"
	"github.com/andresuchdata/storeops/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	scorecardCache, err := cache.NewScorecardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		scorecardCache = cache.NewNoopScorecardCache()
	}

	var archive storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Export archive unavailable, continuing without it")
		} else {
			archive = client
		}
	}

	storeRepo := repository.NewStoreRepository(db.DB)
	evalRepo := repository.NewEvaluationRepository(db.DB, db)
	complaintRepo := repository.NewComplaintRepository(db.DB)
	financeRepo := repository.NewFinanceRepository(db.DB)
	sanctionRepo := repository.NewSanctionRepository(db.DB)

	reportService := service.NewReportService(storeRepo, evalRepo, complaintRepo, financeRepo, sanctionRepo, scorecardCache)

	services := &api.Services{
		StoreRepo:         storeRepo,
		EvaluationService: service.NewEvaluationService(evalRepo, scorecardCache),
		ComplaintService:  service.NewComplaintService(complaintRepo, storeRepo, scorecardCache),
		FinanceService:    service.NewFinanceService(financeRepo, storeRepo, scorecardCache),
		SanctionService:   service.NewSanctionService(sanctionRepo, storeRepo, scorecardCache),
		ReportService:     reportService,
		ExportService:     service.NewExportService(reportService, archive),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
