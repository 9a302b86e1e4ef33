package kpi_test

import (
	"math"
	"testing"

	"github.com/andresuchdata/storeops/internal/kpi"
)

func TestSanctionScoreMonotonicity(t *testing.T) {
	const crew = 10

	none := kpi.MaxScore
	written := kpi.SanctionScore(kpi.SanctionWrittenWarning, crew)
	sp1 := kpi.SanctionScore(kpi.SanctionSP1, crew)
	sp2 := kpi.SanctionScore(kpi.SanctionSP2, crew)

	if !(sp2 < sp1 && sp1 < written && written < none) {
		t.Errorf("expected SP2 < SP1 < written warning < 4, got %v, %v, %v", sp2, sp1, written)
	}
}

func TestSanctionScoreValues(t *testing.T) {
	// Crew of 10: written warning ratio 0.1, against max ratio 0.5 the
	// score is (1 - 0.2) * 4 = 3.2.
	if got := kpi.SanctionScore(kpi.SanctionWrittenWarning, 10); got != 3.2 {
		t.Errorf("written warning score = %v, want 3.2", got)
	}
	// SP2 with a crew of 2 pushes past the max ratio and floors at 0.
	if got := kpi.SanctionScore(kpi.SanctionSP2, 2); got != 0 {
		t.Errorf("SP2 small-crew score = %v, want 0", got)
	}
	// Unknown types carry no weight.
	if got := kpi.SanctionScore("Verbal", 10); got != 4 {
		t.Errorf("unknown type score = %v, want 4", got)
	}
}

func TestSanctionScoreZeroCrew(t *testing.T) {
	for _, typ := range []string{kpi.SanctionWrittenWarning, kpi.SanctionSP1, kpi.SanctionSP2, ""} {
		got := kpi.SanctionScore(typ, 0)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("SanctionScore(%q, 0) = %v, want a finite score", typ, got)
		}
	}
}

func TestAggregateSanctionScore(t *testing.T) {
	// Crew of 10 with SP1 + written warning: weight 3, (1 - 0.3) * 4 = 2.8.
	active := []string{kpi.SanctionSP1, kpi.SanctionWrittenWarning}
	got := kpi.AggregateSanctionScore(active, 10)
	if math.Abs(got-2.8) > 1e-12 {
		t.Errorf("aggregate score = %v, want 2.8", got)
	}

	// Weight beyond the crew size floors at 0.
	heavy := []string{kpi.SanctionSP2, kpi.SanctionSP2, kpi.SanctionSP2, kpi.SanctionSP2}
	if got := kpi.AggregateSanctionScore(heavy, 2); got != 0 {
		t.Errorf("overloaded aggregate score = %v, want 0", got)
	}

	// Unknown crew size defaults to a perfect score by policy.
	if got := kpi.AggregateSanctionScore(active, 0); got != 4 {
		t.Errorf("zero-crew aggregate score = %v, want 4", got)
	}

	if got := kpi.AggregateSanctionScore(nil, 10); got != 4 {
		t.Errorf("no-sanction aggregate score = %v, want 4", got)
	}
}
