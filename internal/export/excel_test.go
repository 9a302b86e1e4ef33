package export_test

import (
	"testing"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/export"
)

func sampleDashboard() *domain.KPIDashboard {
	period := domain.Period{Year: 2025, Month: 7}
	return &domain.KPIDashboard{
		Period: period,
		Scorecards: []domain.StoreScorecard{
			{
				StoreID:   1,
				StoreName: "Kemang",
				Period:    period,
				Checklists: []domain.DomainScore{
					{Domain: "CHAMPS", Stored: 3, Recomputed: 3, Consistent: true},
				},
				Complaints: &domain.DomainScore{Domain: "Complaints", Stored: 4, Recomputed: 4, Consistent: true},
				Financial: []domain.DomainScore{
					{Domain: "Sales", Stored: 3.2, Recomputed: 3.2, Consistent: true},
				},
				Sanctions:         &domain.DomainScore{Domain: "Sanctions", Stored: 2.4, Recomputed: 2.4, Consistent: true},
				OverallScore:      3.15,
				ScoredDimensions:  4,
				WeightedComplaint: 5,
				ActiveSanctions:   1,
			},
			{
				StoreID:          2,
				StoreName:        "Senopati",
				Period:           period,
				OverallScore:     0,
				ScoredDimensions: 0,
			},
		},
	}
}

func TestScorecardWorkbook(t *testing.T) {
	f, err := export.ScorecardWorkbook(sampleDashboard())
	if err != nil {
		t.Fatalf("ScorecardWorkbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %v", sheets)
	}

	rows, err := f.GetRows("KPI Summary")
	if err != nil {
		t.Fatalf("GetRows summary: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 summary rows, got %d", len(rows))
	}
	if rows[1][0] != "Kemang" || rows[1][1] != "2025-07" {
		t.Errorf("unexpected first summary row: %v", rows[1])
	}
	if rows[1][2] != "3.15" {
		t.Errorf("expected overall score 3.15, got %q", rows[1][2])
	}

	detail, err := f.GetRows("Score Detail")
	if err != nil {
		t.Fatalf("GetRows detail: %v", err)
	}
	// Header plus four dimensions for the first store; the second store has none.
	if len(detail) != 5 {
		t.Fatalf("expected 5 detail rows, got %d", len(detail))
	}
	if detail[4][2] != "Sanctions" {
		t.Errorf("expected last dimension Sanctions, got %q", detail[4][2])
	}
}
