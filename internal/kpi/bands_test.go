package kpi_test

import (
	"testing"

	"github.com/andresuchdata/storeops/internal/kpi"
)

func TestBandScoreBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		want       float64
	}{
		{0, 4},
		{0.1, 4},       // inclusive upper bound
		{0.10001, 3},   // just past the first band
		{0.3, 3},
		{0.5, 2},
		{0.7, 1},
		{0.70001, 0},
		{50, 0},
	}

	for _, tc := range cases {
		if got := kpi.BandScore(kpi.ComplaintBands, tc.percentage); got != tc.want {
			t.Errorf("BandScore(%v) = %v, want %v", tc.percentage, got, tc.want)
		}
	}
}

func TestComplaintScore(t *testing.T) {
	// 500 customers/day -> 15000/month. 15 weighted complaints = 0.1% -> 4.
	if got := kpi.ComplaintScore(15, 500); got != 4 {
		t.Errorf("ComplaintScore(15, 500) = %v, want 4", got)
	}
	// 45 weighted complaints = 0.3% -> 3.
	if got := kpi.ComplaintScore(45, 500); got != 3 {
		t.Errorf("ComplaintScore(45, 500) = %v, want 3", got)
	}
	// 120 weighted complaints = 0.8% -> past every band.
	if got := kpi.ComplaintScore(120, 500); got != 0 {
		t.Errorf("ComplaintScore(120, 500) = %v, want 0", got)
	}
}

func TestComplaintScoreZeroVolume(t *testing.T) {
	// Undefined rate must not surface as NaN; worst case by policy.
	if got := kpi.ComplaintScore(10, 0); got != 0 {
		t.Errorf("ComplaintScore with zero volume = %v, want 0", got)
	}
}
