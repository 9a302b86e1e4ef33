package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	financialSheet = "Financials"
	complaintSheet = "Complaints"
)

// FinanceRow is one parsed store month of financial figures. Optional
// target columns stay zero when absent and fall back to store defaults
// downstream.
type FinanceRow struct {
	StoreID       int64
	Period        domain.Period
	TotalSales    float64
	TargetSales   float64
	COGSAchieved  float64
	COGSTarget    float64
	TotalOpex     float64
	OpexTargetPct float64
	TotalCrew     int
}

// ComplaintRow is one parsed store month of complaint counts per channel.
type ComplaintRow struct {
	StoreID      int64
	Period       domain.Period
	WhatsApp     int
	SocialMedia  int
	GMaps        int
	OnlineOrder  int
	LateHandling int
}

// Workbook is the parsed content of one monthly operations workbook.
type Workbook struct {
	Financials []FinanceRow
	Complaints []ComplaintRow
}

// ParseWorkbook reads a monthly operations workbook. Either sheet may be
// absent; a workbook with neither is an error.
func ParseWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	foundSheet := false

	if sheet, ok := findSheet(f, financialSheet); ok {
		foundSheet = true
		wb.Financials, err = parseFinancialSheet(f, sheet)
		if err != nil {
			return nil, err
		}
	}
	if sheet, ok := findSheet(f, complaintSheet); ok {
		foundSheet = true
		wb.Complaints, err = parseComplaintSheet(f, sheet)
		if err != nil {
			return nil, err
		}
	}

	if !foundSheet {
		return nil, fmt.Errorf("workbook has neither %q nor %q sheet", financialSheet, complaintSheet)
	}
	return wb, nil
}

func findSheet(f *excelize.File, name string) (string, bool) {
	for _, sheet := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(sheet), name) {
			return sheet, true
		}
	}
	return "", false
}

func parseFinancialSheet(f *excelize.File, sheet string) ([]FinanceRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	colMap, err := headerMap(rows[0], []string{"store_id", "year", "month", "total_sales", "cogs_achieved", "total_opex"})
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}

	var parsed []FinanceRow
	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		rowNum := i + 2

		storeID, period, err := parseRowKey(colMap, row, rowNum)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}

		record := FinanceRow{StoreID: storeID, Period: period}
		if record.TotalSales, err = floatCell(colMap, row, "total_sales", rowNum); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if record.COGSAchieved, err = floatCell(colMap, row, "cogs_achieved", rowNum); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if record.TotalOpex, err = floatCell(colMap, row, "total_opex", rowNum); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		record.TargetSales = optionalFloatCell(colMap, row, "target_sales")
		record.COGSTarget = optionalFloatCell(colMap, row, "cogs_target")
		record.OpexTargetPct = optionalFloatCell(colMap, row, "opex_target_pct")
		record.TotalCrew = int(optionalFloatCell(colMap, row, "total_crew"))

		parsed = append(parsed, record)
	}
	return parsed, nil
}

func parseComplaintSheet(f *excelize.File, sheet string) ([]ComplaintRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	colMap, err := headerMap(rows[0], []string{"store_id", "year", "month"})
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}

	var parsed []ComplaintRow
	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		rowNum := i + 2

		storeID, period, err := parseRowKey(colMap, row, rowNum)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}

		parsed = append(parsed, ComplaintRow{
			StoreID:      storeID,
			Period:       period,
			WhatsApp:     int(optionalFloatCell(colMap, row, "whatsapp")),
			SocialMedia:  int(optionalFloatCell(colMap, row, "social_media")),
			GMaps:        int(optionalFloatCell(colMap, row, "gmaps")),
			OnlineOrder:  int(optionalFloatCell(colMap, row, "online_order")),
			LateHandling: int(optionalFloatCell(colMap, row, "late_handling")),
		})
	}
	return parsed, nil
}

func headerMap(header []string, required []string) (map[string]int, error) {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if key != "" {
			colMap[key] = i
		}
	}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	return colMap, nil
}

func parseRowKey(colMap map[string]int, row []string, rowNum int) (int64, domain.Period, error) {
	storeID, err := intCell(colMap, row, "store_id", rowNum)
	if err != nil {
		return 0, domain.Period{}, err
	}
	year, err := intCell(colMap, row, "year", rowNum)
	if err != nil {
		return 0, domain.Period{}, err
	}
	month, err := intCell(colMap, row, "month", rowNum)
	if err != nil {
		return 0, domain.Period{}, err
	}
	if month < 1 || month > 12 {
		return 0, domain.Period{}, fmt.Errorf("row %d: month %d out of range", rowNum, month)
	}
	return storeID, domain.Period{Year: int(year), Month: int(month)}, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellValue(colMap map[string]int, row []string, col string) string {
	idx, ok := colMap[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intCell(colMap map[string]int, row []string, col string, rowNum int) (int64, error) {
	raw := cellValue(colMap, row, col)
	if raw == "" {
		return 0, fmt.Errorf("row %d: column %s is empty", rowNum, col)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q", rowNum, col, raw)
	}
	return value, nil
}

func floatCell(colMap map[string]int, row []string, col string, rowNum int) (float64, error) {
	raw := cellValue(colMap, row, col)
	if raw == "" {
		return 0, fmt.Errorf("row %d: column %s is empty", rowNum, col)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q", rowNum, col, raw)
	}
	return value, nil
}

func optionalFloatCell(colMap map[string]int, row []string, col string) float64 {
	raw := cellValue(colMap, row, col)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0
	}
	return value
}
