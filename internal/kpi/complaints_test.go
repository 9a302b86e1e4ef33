package kpi_test

import (
	"errors"
	"testing"

	"github.com/andresuchdata/storeops/internal/kpi"
)

func TestWeightedComplaints(t *testing.T) {
	counts := map[string]int{
		kpi.ChannelWhatsApp:    2,
		kpi.ChannelSocialMedia: 1,
	}
	weights := map[string]float64{
		kpi.ChannelWhatsApp:    1.5,
		kpi.ChannelSocialMedia: 2,
	}

	total, err := kpi.WeightedComplaints(counts, weights)
	if err != nil {
		t.Fatalf("WeightedComplaints: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %v, want 5 (2*1.5 + 1*2)", total)
	}
}

func TestWeightedComplaintsDefaultWeight(t *testing.T) {
	counts := map[string]int{kpi.ChannelGMaps: 3}

	total, err := kpi.WeightedComplaints(counts, nil)
	if err != nil {
		t.Fatalf("WeightedComplaints: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %v, want 3 (missing channel weighs 1)", total)
	}
}

func TestWeightedComplaintsRejectsNegatives(t *testing.T) {
	var compErr *kpi.ComputationError

	_, err := kpi.WeightedComplaints(map[string]int{kpi.ChannelWhatsApp: -1}, nil)
	if !errors.As(err, &compErr) {
		t.Fatalf("expected ComputationError for negative count, got %v", err)
	}

	_, err = kpi.WeightedComplaints(
		map[string]int{kpi.ChannelWhatsApp: 1},
		map[string]float64{kpi.ChannelWhatsApp: -2},
	)
	if !errors.As(err, &compErr) {
		t.Fatalf("expected ComputationError for negative weight, got %v", err)
	}
}
