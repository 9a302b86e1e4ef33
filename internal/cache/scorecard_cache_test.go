package cache

import (
	"testing"

	"github.com/andresuchdata/storeops/internal/domain"
)

func TestDashboardFilterHashStable(t *testing.T) {
	a := domain.ReportFilter{StoreIDs: []int64{2, 1}, Year: 2025, Month: 7}
	b := domain.ReportFilter{StoreIDs: []int64{1, 2}, Year: 2025, Month: 7}

	if dashboardFilterHash(a) != dashboardFilterHash(b) {
		t.Error("store id order must not change the cache key")
	}
}

func TestDashboardFilterHashDistinguishesPeriods(t *testing.T) {
	a := domain.ReportFilter{Year: 2025, Month: 7}
	b := domain.ReportFilter{Year: 2025, Month: 8}

	if dashboardFilterHash(a) == dashboardFilterHash(b) {
		t.Error("different periods must hash to different cache keys")
	}
}
