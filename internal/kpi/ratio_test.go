package kpi_test

import (
	"testing"

	"github.com/andresuchdata/storeops/internal/kpi"
)

func TestRatioScoreClamping(t *testing.T) {
	cases := []struct {
		name   string
		actual float64
		target float64
		want   float64
	}{
		{"on target", 100, 100, 4},
		{"half of target", 50, 100, 2},
		{"far above target clamps to 4", 1000, 100, 4},
		{"zero target scores 0", 100, 0, 0},
		{"zero actual scores 0", 0, 100, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := kpi.RatioScore(tc.actual, tc.target)
			if got != tc.want {
				t.Errorf("RatioScore(%v, %v) = %v, want %v", tc.actual, tc.target, got, tc.want)
			}
			if got < 0 || got > kpi.MaxScore {
				t.Errorf("score %v outside [0, 4]", got)
			}
		})
	}
}

func TestInvertedRatioScore(t *testing.T) {
	// Beating a cost target (actual below target) must clamp at 4, not exceed it.
	if got := kpi.InvertedRatioScore(100, 50); got != 4 {
		t.Errorf("InvertedRatioScore(100, 50) = %v, want 4", got)
	}
	if got := kpi.InvertedRatioScore(100, 200); got != 2 {
		t.Errorf("InvertedRatioScore(100, 200) = %v, want 2", got)
	}
	// Zero actual would divide by zero; policy is score 0.
	if got := kpi.InvertedRatioScore(100, 0); got != 0 {
		t.Errorf("InvertedRatioScore(100, 0) = %v, want 0", got)
	}
}

func TestProductivityScore(t *testing.T) {
	// 8 crew at exactly the per-crew target earns the full score.
	sales := float64(8 * kpi.CrewMonthlySalesTarget)
	if got := kpi.ProductivityScore(sales, 8); got != 4 {
		t.Errorf("ProductivityScore at target = %v, want 4", got)
	}
	if got := kpi.ProductivityScore(sales/2, 8); got != 2 {
		t.Errorf("ProductivityScore at half target = %v, want 2", got)
	}
	if got := kpi.ProductivityScore(sales, 0); got != 0 {
		t.Errorf("ProductivityScore with zero crew = %v, want 0", got)
	}
}

func TestOpexScore(t *testing.T) {
	// 10% actual vs 10% target: exactly on target.
	if got := kpi.OpexScore(1_000_000, 10_000_000, 10); got != 4 {
		t.Errorf("OpexScore on target = %v, want 4", got)
	}
	// 20% actual vs 10% target: twice the allowed spend ratio.
	if got := kpi.OpexScore(2_000_000, 10_000_000, 10); got != 2 {
		t.Errorf("OpexScore at double spend = %v, want 2", got)
	}
	if got := kpi.OpexScore(1_000_000, 0, 10); got != 0 {
		t.Errorf("OpexScore with zero sales = %v, want 0", got)
	}
}

func TestScoreFinancial(t *testing.T) {
	in := kpi.FinancialInput{
		TotalSales:    240_000_000,
		TargetSales:   300_000_000,
		COGSAchieved:  100_000_000,
		COGSTarget:    90_000_000,
		TotalOpex:     36_000_000,
		OpexTargetPct: 12,
		TotalCrew:     8,
	}

	got := kpi.ScoreFinancial(in)

	if want := 3.2; got.Sales != want {
		t.Errorf("Sales = %v, want %v", got.Sales, want)
	}
	if want := 3.6; got.COGS != want {
		t.Errorf("COGS = %v, want %v", got.COGS, want)
	}
	// actual opex pct = 15, target 12 -> 12/15*4 = 3.2
	if want := 3.2; got.Opex != want {
		t.Errorf("Opex = %v, want %v", got.Opex, want)
	}
	// per-crew sales 30M = exactly the target
	if want := 4.0; got.Productivity != want {
		t.Errorf("Productivity = %v, want %v", got.Productivity, want)
	}
}
