package drive

import (
	"bytes"
	"context"
	"time"

	"github.com/andresuchdata/storeops/internal/ingest"
	"github.com/rs/zerolog/log"
)

// Watcher polls a Drive folder and ingests workbooks that are new or have
// been modified since the last poll.
type Watcher struct {
	service  *Service
	ingest   *ingest.Service
	folderID string
	interval time.Duration

	// file id to last seen modifiedTime
	seen map[string]string
}

func NewWatcher(service *Service, ingestSvc *ingest.Service, folderID string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		service:  service,
		ingest:   ingestSvc,
		folderID: folderID,
		interval: interval,
		seen:     make(map[string]string),
	}
}

// Run polls until the context is cancelled. The first poll happens
// immediately.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("drive watcher stopped")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	files, err := w.service.ListWorkbooks(w.folderID)
	if err != nil {
		log.Warn().Err(err).Str("folder_id", w.folderID).Msg("drive poll failed")
		return
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if w.seen[f.ID] == f.ModifiedTime {
			continue
		}

		if err := w.ingestWorkbook(ctx, f); err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("drive workbook ingest failed")
			continue
		}
		w.seen[f.ID] = f.ModifiedTime
	}
}

func (w *Watcher) ingestWorkbook(ctx context.Context, f *File) error {
	var buf bytes.Buffer
	if err := w.service.DownloadFile(f.ID, &buf); err != nil {
		return err
	}

	summary, err := w.ingest.IngestReader(ctx, &buf)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", f.Name).
		Int("financial_rows", summary.FinancialRows).
		Int("complaint_rows", summary.ComplaintRows).
		Int("row_errors", len(summary.RowErrors)).
		Msg("drive workbook ingested")
	return nil
}
