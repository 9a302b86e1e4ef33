package kpi_test

import (
	"errors"
	"testing"

	"github.com/andresuchdata/storeops/internal/kpi"
)

func TestAdjustChecklistExcludeSemantics(t *testing.T) {
	// Exclude removes points from both numerator and denominator; cross
	// removes them from the numerator only.
	items := []kpi.ChecklistItem{
		{PointValue: 10, Status: kpi.StatusNone},
		{PointValue: 10, Status: kpi.StatusExclude},
		{PointValue: 10, Status: kpi.StatusCross},
	}

	r, err := kpi.AdjustChecklist(items)
	if err != nil {
		t.Fatalf("AdjustChecklist: %v", err)
	}

	if r.InitialTotal != 30 {
		t.Errorf("InitialTotal = %v, want 30", r.InitialTotal)
	}
	if r.AdjustedTotal != 20 {
		t.Errorf("AdjustedTotal = %v, want 20", r.AdjustedTotal)
	}
	if r.EarnedPoints != 10 {
		t.Errorf("EarnedPoints = %v, want 10", r.EarnedPoints)
	}
	if r.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", r.Percentage)
	}
	if r.Score != 2 {
		t.Errorf("Score = %v, want 2", r.Score)
	}
}

func TestAdjustChecklistIdempotent(t *testing.T) {
	items := []kpi.ChecklistItem{
		{PointValue: 5, Status: kpi.StatusNone},
		{PointValue: 3, Status: kpi.StatusCross},
		{PointValue: 2, Status: kpi.StatusExclude},
	}

	first, err := kpi.AdjustChecklist(items)
	if err != nil {
		t.Fatalf("first AdjustChecklist: %v", err)
	}
	second, err := kpi.AdjustChecklist(items)
	if err != nil {
		t.Fatalf("second AdjustChecklist: %v", err)
	}
	if first != second {
		t.Errorf("recomputation differs: %+v vs %+v", first, second)
	}
}

func TestAdjustChecklistAllExcluded(t *testing.T) {
	items := []kpi.ChecklistItem{
		{PointValue: 10, Status: kpi.StatusExclude},
		{PointValue: 5, Status: kpi.StatusExclude},
	}

	r, err := kpi.AdjustChecklist(items)
	if err != nil {
		t.Fatalf("AdjustChecklist: %v", err)
	}
	if r.AdjustedTotal != 0 {
		t.Errorf("AdjustedTotal = %v, want 0", r.AdjustedTotal)
	}
	if r.Percentage != 0 || r.Score != 0 {
		t.Errorf("degenerate case: percentage %v, score %v, want 0, 0", r.Percentage, r.Score)
	}
}

func TestAdjustChecklistEmpty(t *testing.T) {
	r, err := kpi.AdjustChecklist(nil)
	if err != nil {
		t.Fatalf("AdjustChecklist(nil): %v", err)
	}
	if r.Score != 0 {
		t.Errorf("empty checklist score = %v, want 0", r.Score)
	}
}

func TestAdjustChecklistRejectsNegativePoints(t *testing.T) {
	_, err := kpi.AdjustChecklist([]kpi.ChecklistItem{{PointValue: -1, Status: kpi.StatusNone}})
	if err == nil {
		t.Fatal("expected error for negative point value")
	}
	var compErr *kpi.ComputationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected ComputationError, got %T", err)
	}
}

func TestItemScoreMatchesAggregate(t *testing.T) {
	// The aggregate earned points must equal the sum of persisted item
	// scores so stored and recomputed views cannot drift.
	items := []kpi.ChecklistItem{
		{PointValue: 4, Status: kpi.StatusNone},
		{PointValue: 6, Status: kpi.StatusCross},
		{PointValue: 2, Status: kpi.StatusExclude},
		{PointValue: 8, Status: kpi.StatusNone},
	}

	var sum float64
	for _, item := range items {
		sum += kpi.ItemScore(item)
	}

	r, err := kpi.AdjustChecklist(items)
	if err != nil {
		t.Fatalf("AdjustChecklist: %v", err)
	}
	if sum != r.EarnedPoints {
		t.Errorf("sum of item scores %v != aggregate earned points %v", sum, r.EarnedPoints)
	}
}
