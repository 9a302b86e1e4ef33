package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andresuchdata/storeops/internal/service"
	"github.com/rs/zerolog/log"
)

// Summary reports what one workbook ingestion accomplished. RowErrors
// collects per-row failures so one bad row does not abort the whole file.
type Summary struct {
	FinancialRows int      `json:"financial_rows"`
	ComplaintRows int      `json:"complaint_rows"`
	RowErrors     []string `json:"row_errors,omitempty"`
}

type Service struct {
	finance    *service.FinanceService
	complaints *service.ComplaintService
}

func NewService(finance *service.FinanceService, complaints *service.ComplaintService) *Service {
	return &Service{finance: finance, complaints: complaints}
}

// IngestReader parses a workbook stream and applies every row through the
// scoring services, so imported months carry the same stored scores as
// manual submissions.
func (s *Service) IngestReader(ctx context.Context, r io.Reader) (*Summary, error) {
	wb, err := ParseWorkbook(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}

	for _, row := range wb.Financials {
		_, err := s.finance.Submit(ctx, service.FinanceInput{
			StoreID:       row.StoreID,
			Period:        row.Period,
			TotalSales:    row.TotalSales,
			TargetSales:   row.TargetSales,
			COGSAchieved:  row.COGSAchieved,
			COGSTarget:    row.COGSTarget,
			TotalOpex:     row.TotalOpex,
			OpexTargetPct: row.OpexTargetPct,
			TotalCrew:     row.TotalCrew,
		})
		if err != nil {
			summary.RowErrors = append(summary.RowErrors,
				fmt.Sprintf("financials store %d %04d-%02d: %v", row.StoreID, row.Period.Year, row.Period.Month, err))
			continue
		}
		summary.FinancialRows++
	}

	for _, row := range wb.Complaints {
		_, err := s.complaints.Submit(ctx, service.ComplaintInput{
			StoreID:      row.StoreID,
			Period:       row.Period,
			WhatsApp:     row.WhatsApp,
			SocialMedia:  row.SocialMedia,
			GMaps:        row.GMaps,
			OnlineOrder:  row.OnlineOrder,
			LateHandling: row.LateHandling,
		})
		if err != nil {
			summary.RowErrors = append(summary.RowErrors,
				fmt.Sprintf("complaints store %d %04d-%02d: %v", row.StoreID, row.Period.Year, row.Period.Month, err))
			continue
		}
		summary.ComplaintRows++
	}

	log.Info().
		Int("financial_rows", summary.FinancialRows).
		Int("complaint_rows", summary.ComplaintRows).
		Int("row_errors", len(summary.RowErrors)).
		Msg("workbook ingested")

	return summary, nil
}

// IngestFile ingests a workbook from a local path.
func (s *Service) IngestFile(ctx context.Context, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return s.IngestReader(ctx, f)
}
