package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/export"
	"github.com/andresuchdata/storeops/internal/storage"
	"github.com/rs/zerolog/log"
)

// ExportService renders dashboards as Excel workbooks and archives a copy
// to object storage when one is configured.
type ExportService struct {
	reports *ReportService
	archive storage.ObjectStorage
}

func NewExportService(reports *ReportService, archive storage.ObjectStorage) *ExportService {
	return &ExportService{reports: reports, archive: archive}
}

// MonthlyWorkbook builds the xlsx export for one period and returns its
// suggested filename together with the serialized bytes.
func (s *ExportService) MonthlyWorkbook(ctx context.Context, filter domain.ReportFilter) (string, []byte, error) {
	dashboard, err := s.reports.Dashboard(ctx, filter)
	if err != nil {
		return "", nil, fmt.Errorf("error building dashboard for export: %w", err)
	}

	f, err := export.ScorecardWorkbook(dashboard)
	if err != nil {
		return "", nil, fmt.Errorf("error rendering workbook: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("error serializing workbook: %w", err)
	}

	filename := fmt.Sprintf("kpi-scores-%04d-%02d.xlsx", dashboard.Period.Year, dashboard.Period.Month)
	data := buf.Bytes()

	if s.archive != nil {
		key := fmt.Sprintf("exports/%04d/%02d/%s", dashboard.Period.Year, dashboard.Period.Month, filename)
		if err := s.archive.UploadObject(ctx, key, data); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("exports: archive upload failed")
		}
	}

	return filename, data, nil
}
