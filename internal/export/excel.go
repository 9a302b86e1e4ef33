package export

import (
	"fmt"
	"math"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "KPI Summary"
	detailSheet  = "Score Detail"
)

// ScorecardWorkbook renders a monthly KPI dashboard as an Excel workbook
// with a per-store summary sheet and a per-dimension detail sheet.
func ScorecardWorkbook(dashboard *domain.KPIDashboard) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := buildSummarySheet(f, dashboard); err != nil {
		f.Close()
		return nil, err
	}
	if err := buildDetailSheet(f, dashboard); err != nil {
		f.Close()
		return nil, err
	}

	// excelize creates a default "Sheet1" we do not use.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(summarySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error locating summary sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	return f, nil
}

func buildSummarySheet(f *excelize.File, dashboard *domain.KPIDashboard) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("error creating summary sheet: %w", err)
	}

	header := []interface{}{
		"Store", "Period", "Overall Score", "Scored Dimensions",
		"Weighted Complaints", "Active Sanctions",
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing summary header: %w", err)
	}

	for i, card := range dashboard.Scorecards {
		row := []interface{}{
			card.StoreName,
			periodLabel(card.Period),
			round2(card.OverallScore),
			card.ScoredDimensions,
			round2(card.WeightedComplaint),
			card.ActiveSanctions,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("error writing summary row for store %d: %w", card.StoreID, err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return fmt.Errorf("error sizing summary columns: %w", err)
	}
	return f.SetColWidth(summarySheet, "B", "F", 18)
}

func buildDetailSheet(f *excelize.File, dashboard *domain.KPIDashboard) error {
	if _, err := f.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("error creating detail sheet: %w", err)
	}

	header := []interface{}{"Store", "Period", "Dimension", "Stored Score", "Recomputed Score", "Consistent"}
	if err := f.SetSheetRow(detailSheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing detail header: %w", err)
	}

	rowNum := 2
	for _, card := range dashboard.Scorecards {
		for _, score := range collectScores(card) {
			row := []interface{}{
				card.StoreName,
				periodLabel(card.Period),
				score.Domain,
				round2(score.Stored),
				round2(score.Recomputed),
				score.Consistent,
			}
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(detailSheet, cell, &row); err != nil {
				return fmt.Errorf("error writing detail row for store %d: %w", card.StoreID, err)
			}
			rowNum++
		}
	}

	if err := f.SetColWidth(detailSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("error sizing detail columns: %w", err)
	}
	return f.SetColWidth(detailSheet, "B", "F", 18)
}

func collectScores(card domain.StoreScorecard) []domain.DomainScore {
	scores := make([]domain.DomainScore, 0, len(card.Checklists)+len(card.Financial)+2)
	scores = append(scores, card.Checklists...)
	if card.Complaints != nil {
		scores = append(scores, *card.Complaints)
	}
	scores = append(scores, card.Financial...)
	if card.Sanctions != nil {
		scores = append(scores, *card.Sanctions)
	}
	return scores
}

func periodLabel(p domain.Period) string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
