package ingest_test

import (
	"bytes"
	"testing"

	"github.com/andresuchdata/storeops/internal/ingest"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet %s: %v", name, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow %s: %v", name, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]interface{}{
		"Financials": {
			{"store_id", "year", "month", "total_sales", "target_sales", "cogs_achieved", "cogs_target", "total_opex", "opex_target_pct", "total_crew"},
			{1, 2025, 7, 240000000, 300000000, 70000000, 90000000, 30000000, 12, 8},
			{2, 2025, 7, 180000000, "", 50000000, "", 25000000, "", ""},
		},
		"Complaints": {
			{"store_id", "year", "month", "whatsapp", "social_media", "gmaps", "online_order", "late_handling"},
			{1, 2025, 7, 2, 0, 1, 0, 1},
		},
	})

	wb, err := ingest.ParseWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}

	if len(wb.Financials) != 2 {
		t.Fatalf("expected 2 financial rows, got %d", len(wb.Financials))
	}
	first := wb.Financials[0]
	if first.StoreID != 1 || first.Period.Year != 2025 || first.Period.Month != 7 {
		t.Errorf("unexpected first row key: %+v", first)
	}
	if first.TotalSales != 240000000 || first.TargetSales != 300000000 {
		t.Errorf("unexpected first row sales: %+v", first)
	}
	if first.OpexTargetPct != 12 || first.TotalCrew != 8 {
		t.Errorf("unexpected first row targets: %+v", first)
	}

	// Blank optional cells stay zero so store defaults apply downstream.
	second := wb.Financials[1]
	if second.TargetSales != 0 || second.COGSTarget != 0 || second.TotalCrew != 0 {
		t.Errorf("expected zero optional fields, got %+v", second)
	}

	if len(wb.Complaints) != 1 {
		t.Fatalf("expected 1 complaint row, got %d", len(wb.Complaints))
	}
	complaint := wb.Complaints[0]
	if complaint.WhatsApp != 2 || complaint.GMaps != 1 || complaint.LateHandling != 1 {
		t.Errorf("unexpected complaint counts: %+v", complaint)
	}
}

func TestParseWorkbookMissingColumn(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]interface{}{
		"Financials": {
			{"store_id", "year", "month", "total_sales"},
			{1, 2025, 7, 240000000},
		},
	})

	if _, err := ingest.ParseWorkbook(buf); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestParseWorkbookNoKnownSheets(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]interface{}{
		"Notes": {{"anything"}},
	})

	if _, err := ingest.ParseWorkbook(buf); err == nil {
		t.Fatal("expected error for workbook without known sheets")
	}
}

func TestParseWorkbookComplaintsOnly(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]interface{}{
		"complaints": {
			{"store_id", "year", "month", "whatsapp"},
			{3, 2025, 6, 4},
		},
	})

	wb, err := ingest.ParseWorkbook(buf)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(wb.Financials) != 0 {
		t.Errorf("expected no financial rows, got %d", len(wb.Financials))
	}
	if len(wb.Complaints) != 1 || wb.Complaints[0].WhatsApp != 4 {
		t.Errorf("unexpected complaints: %+v", wb.Complaints)
	}
}
