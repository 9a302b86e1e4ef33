package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/kpi"
	"github.com/andresuchdata/storeops/internal/service"
)

func testStore() domain.Store {
	return domain.Store{
		ID:                 1,
		Name:               "Bandung Dago",
		City:               "Bandung",
		TotalCrew:          10,
		AvgCustomersPerDay: 500,
		TargetSales:        300_000_000,
		COGSTarget:         90_000_000,
		OpexTargetPct:      12,
	}
}

func TestEvaluationSubmitPersistsChecklistScore(t *testing.T) {
	ctx := context.Background()

	evalRepo := newFakeEvaluationRepo()
	evalRepo.items[7] = []domain.ChecklistTemplateItem{
		{ID: 1, TemplateID: 7, Text: "Greeting", PointValue: 10},
		{ID: 2, TemplateID: 7, Text: "Uniform", PointValue: 10},
		{ID: 3, TemplateID: 7, Text: "Drive-thru timer", PointValue: 10},
	}

	svc := service.NewEvaluationService(evalRepo, nil)

	sub, err := svc.Submit(ctx, service.EvaluationInput{
		StoreID:    1,
		TemplateID: 7,
		Period:     domain.Period{Year: 2025, Month: 7},
		Statuses: map[int64]string{
			2: "exclude",
			3: "cross",
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if sub.InitialTotal != 30 || sub.AdjustedTotal != 20 || sub.EarnedPoints != 10 {
		t.Errorf("totals = %v/%v/%v, want 30/20/10",
			sub.InitialTotal, sub.AdjustedTotal, sub.EarnedPoints)
	}
	if sub.KPIScore != 2 {
		t.Errorf("KPIScore = %v, want 2", sub.KPIScore)
	}

	// Persisted item scores must sum to the aggregate earned points.
	_, items, err := svc.Get(ctx, sub.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var sum float64
	for _, item := range items {
		sum += item.Score
	}
	if sum != sub.EarnedPoints {
		t.Errorf("item score sum = %v, want %v", sum, sub.EarnedPoints)
	}
}

func TestEvaluationSubmitRejectsUnknownStatus(t *testing.T) {
	evalRepo := newFakeEvaluationRepo()
	evalRepo.items[7] = []domain.ChecklistTemplateItem{{ID: 1, TemplateID: 7, PointValue: 5}}

	svc := service.NewEvaluationService(evalRepo, nil)

	_, err := svc.Submit(context.Background(), service.EvaluationInput{
		TemplateID: 7,
		Statuses:   map[int64]string{1: "skipped"},
	})
	if err == nil {
		t.Fatal("expected error for unknown item status")
	}
}

func TestComplaintSubmitUsesWeightTable(t *testing.T) {
	storeRepo := newFakeStoreRepo(testStore())
	complaintRepo := newFakeComplaintRepo(map[string]float64{
		kpi.ChannelWhatsApp:    1.5,
		kpi.ChannelSocialMedia: 2,
	})

	svc := service.NewComplaintService(complaintRepo, storeRepo, nil)

	rec, err := svc.Submit(context.Background(), service.ComplaintInput{
		StoreID:     1,
		Period:      domain.Period{Year: 2025, Month: 7},
		WhatsApp:    2,
		SocialMedia: 1,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if rec.WeightedTotal != 5 {
		t.Errorf("WeightedTotal = %v, want 5", rec.WeightedTotal)
	}
	// 5 weighted complaints on 15000 monthly customers = 0.033% -> band 4.
	if rec.KPIScore != 4 {
		t.Errorf("KPIScore = %v, want 4", rec.KPIScore)
	}
}

func TestComplaintSubmitRejectsNegativeCounts(t *testing.T) {
	storeRepo := newFakeStoreRepo(testStore())
	svc := service.NewComplaintService(newFakeComplaintRepo(nil), storeRepo, nil)

	_, err := svc.Submit(context.Background(), service.ComplaintInput{
		StoreID:  1,
		WhatsApp: -3,
	})
	if err == nil {
		t.Fatal("expected error for negative complaint count")
	}
}

func TestFinanceSubmitFallsBackToStoreTargets(t *testing.T) {
	storeRepo := newFakeStoreRepo(testStore())
	financeRepo := &fakeFinanceRepo{}

	svc := service.NewFinanceService(financeRepo, storeRepo, nil)

	snap, err := svc.Submit(context.Background(), service.FinanceInput{
		StoreID:      1,
		Period:       domain.Period{Year: 2025, Month: 7},
		TotalSales:   240_000_000,
		COGSAchieved: 100_000_000,
		TotalOpex:    36_000_000,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if snap.TargetSales != 300_000_000 {
		t.Errorf("TargetSales = %v, want store default", snap.TargetSales)
	}
	if snap.SalesScore != 3.2 {
		t.Errorf("SalesScore = %v, want 3.2", snap.SalesScore)
	}
	if snap.ProductivityScore != 3.2 {
		t.Errorf("ProductivityScore = %v, want 3.2", snap.ProductivityScore)
	}
}

func TestSanctionCreateScoresAgainstCrew(t *testing.T) {
	storeRepo := newFakeStoreRepo(testStore())
	sanctionRepo := &fakeSanctionRepo{}

	svc := service.NewSanctionService(sanctionRepo, storeRepo, nil)

	rec, err := svc.Create(context.Background(), service.SanctionInput{
		StoreID:        1,
		EmployeeName:   "Budi",
		SanctionType:   kpi.SanctionSP1,
		SanctionDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DurationMonths: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// SP1 weight 2 on crew 10: ratio 0.2 against max 0.5 -> (1-0.4)*4 = 2.4.
	if rec.KPIScore != 2.4 {
		t.Errorf("KPIScore = %v, want 2.4", rec.KPIScore)
	}

	if _, err := svc.Create(context.Background(), service.SanctionInput{
		StoreID:        1,
		SanctionType:   "Teguran Lisan",
		DurationMonths: 1,
	}); err == nil {
		t.Error("expected error for unknown sanction type")
	}
}

func TestScorecardRecomputationMatchesStoredScores(t *testing.T) {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 7}

	storeRepo := newFakeStoreRepo(testStore())
	evalRepo := newFakeEvaluationRepo()
	evalRepo.items[1] = []domain.ChecklistTemplateItem{
		{ID: 1, TemplateID: 1, Text: "Cleanliness", PointValue: 10},
		{ID: 2, TemplateID: 1, Text: "Hospitality", PointValue: 10},
	}
	complaintRepo := newFakeComplaintRepo(map[string]float64{kpi.ChannelWhatsApp: 1})
	financeRepo := &fakeFinanceRepo{}
	sanctionRepo := &fakeSanctionRepo{}

	evalSvc := service.NewEvaluationService(evalRepo, nil)
	if _, err := evalSvc.Submit(ctx, service.EvaluationInput{
		StoreID: 1, TemplateID: 1, Period: period,
		Statuses: map[int64]string{2: "cross"},
	}); err != nil {
		t.Fatalf("submit evaluation: %v", err)
	}

	complaintSvc := service.NewComplaintService(complaintRepo, storeRepo, nil)
	if _, err := complaintSvc.Submit(ctx, service.ComplaintInput{
		StoreID: 1, Period: period, WhatsApp: 15,
	}); err != nil {
		t.Fatalf("submit complaints: %v", err)
	}

	financeSvc := service.NewFinanceService(financeRepo, storeRepo, nil)
	if _, err := financeSvc.Submit(ctx, service.FinanceInput{
		StoreID: 1, Period: period,
		TotalSales: 240_000_000, COGSAchieved: 100_000_000, TotalOpex: 36_000_000,
	}); err != nil {
		t.Fatalf("submit finance: %v", err)
	}

	sanctionSvc := service.NewSanctionService(sanctionRepo, storeRepo, nil)
	if _, err := sanctionSvc.Create(ctx, service.SanctionInput{
		StoreID: 1, EmployeeName: "Budi",
		SanctionType: kpi.SanctionSP2, DurationMonths: 6,
		SanctionDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create sanction: %v", err)
	}

	reportSvc := service.NewReportService(storeRepo, evalRepo, complaintRepo, financeRepo, sanctionRepo, nil)

	card, err := reportSvc.Scorecard(ctx, 1, period)
	if err != nil {
		t.Fatalf("Scorecard: %v", err)
	}

	if len(card.Checklists) != 1 {
		t.Fatalf("expected 1 checklist dimension, got %d", len(card.Checklists))
	}
	if len(card.Financial) != 4 {
		t.Fatalf("expected 4 financial dimensions, got %d", len(card.Financial))
	}
	if card.Complaints == nil || card.Sanctions == nil {
		t.Fatal("expected complaint and sanction dimensions")
	}

	// Stored and recomputed paths must agree on every dimension.
	check := func(ds domain.DomainScore) {
		t.Helper()
		if !ds.Consistent {
			t.Errorf("%s: stored %v != recomputed %v", ds.Domain, ds.Stored, ds.Recomputed)
		}
		if ds.Stored < 0 || ds.Stored > kpi.MaxScore {
			t.Errorf("%s: score %v outside [0, 4]", ds.Domain, ds.Stored)
		}
	}
	for _, ds := range card.Checklists {
		check(ds)
	}
	for _, ds := range card.Financial {
		check(ds)
	}
	check(*card.Complaints)
	check(*card.Sanctions)

	if card.ScoredDimensions != 7 {
		t.Errorf("ScoredDimensions = %d, want 7", card.ScoredDimensions)
	}
	if card.OverallScore <= 0 || card.OverallScore > kpi.MaxScore {
		t.Errorf("OverallScore = %v outside (0, 4]", card.OverallScore)
	}
	if card.ActiveSanctions != 1 {
		t.Errorf("ActiveSanctions = %d, want 1", card.ActiveSanctions)
	}
}

func TestDashboardCoversAllStores(t *testing.T) {
	ctx := context.Background()

	second := testStore()
	second.ID = 2
	second.Name = "Jakarta Sudirman"

	storeRepo := newFakeStoreRepo(testStore(), second)
	reportSvc := service.NewReportService(
		storeRepo, newFakeEvaluationRepo(), newFakeComplaintRepo(nil),
		&fakeFinanceRepo{}, &fakeSanctionRepo{}, nil)

	dashboard, err := reportSvc.Dashboard(ctx, domain.ReportFilter{Year: 2025, Month: 7})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(dashboard.Scorecards) != 2 {
		t.Fatalf("expected 2 scorecards, got %d", len(dashboard.Scorecards))
	}
	// Sorted by store name.
	if dashboard.Scorecards[0].StoreName != "Bandung Dago" {
		t.Errorf("scorecards not sorted by store name: %s first", dashboard.Scorecards[0].StoreName)
	}
}
