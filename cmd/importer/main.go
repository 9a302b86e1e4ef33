package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/storeops/internal/cache"
	"github.com/andresuchdata/storeops/internal/config"
	"github.com/andresuchdata/storeops/internal/drive"
	"github.com/andresuchdata/storeops/internal/ingest"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/andresuchdata/storeops/internal/repository/postgres"
	"github.com/andresuchdata/storeops/internal/service"
	"github.com/andresuchdata/storeops/pkg/logger"
	"github.com/gorilla/mux"
)

// The importer is a separate process so bulk workbook ingestion never
// competes with dashboard traffic on the API server.
func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	scorecardCache, err := cache.NewScorecardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		scorecardCache = cache.NewNoopScorecardCache()
	}

	storeRepo := repository.NewStoreRepository(db.DB)
	financeRepo := repository.NewFinanceRepository(db.DB)
	complaintRepo := repository.NewComplaintRepository(db.DB)

	ingestService := ingest.NewService(
		service.NewFinanceService(financeRepo, storeRepo, scorecardCache),
		service.NewComplaintService(complaintRepo, storeRepo, scorecardCache),
	)

	r := mux.NewRouter()
	ingest.NewHandler(ingestService, cfg.Importer.UploadDir).RegisterRoutes(r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Drive.Enabled {
		driveService, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize Google Drive service")
		}

		drive.NewHandler(driveService, ingestService).RegisterRoutes(r)

		watcher := drive.NewWatcher(driveService, ingestService, cfg.Drive.FolderID,
			time.Duration(cfg.Drive.PollSeconds)*time.Second)
		go watcher.Run(ctx)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Importer.Port,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Importer.Port).Msg("Starting importer")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start importer")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down importer...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Importer forced to shutdown")
	}
}
