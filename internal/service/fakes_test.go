package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/storeops/internal/domain"
)

// In-memory repository fakes for exercising the service layer without a
// database.

type fakeStoreRepo struct {
	stores map[int64]domain.Store
}

func newFakeStoreRepo(stores ...domain.Store) *fakeStoreRepo {
	m := make(map[int64]domain.Store)
	for _, s := range stores {
		m[s.ID] = s
	}
	return &fakeStoreRepo{stores: m}
}

func (f *fakeStoreRepo) ListStores(ctx context.Context) ([]domain.Store, error) {
	out := make([]domain.Store, 0, len(f.stores))
	for _, s := range f.stores {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStoreRepo) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, fmt.Errorf("store %d not found", id)
	}
	return &s, nil
}

func (f *fakeStoreRepo) CreateStore(ctx context.Context, store *domain.Store) error {
	store.ID = int64(len(f.stores) + 1)
	f.stores[store.ID] = *store
	return nil
}

func (f *fakeStoreRepo) UpdateStore(ctx context.Context, store *domain.Store) error {
	f.stores[store.ID] = *store
	return nil
}

type fakeEvaluationRepo struct {
	templates   []domain.ChecklistTemplate
	items       map[int64][]domain.ChecklistTemplateItem
	submissions []domain.EvaluationSubmission
	results     map[string][]domain.EvaluationItemResult
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{
		items:   make(map[int64][]domain.ChecklistTemplateItem),
		results: make(map[string][]domain.EvaluationItemResult),
	}
}

func (f *fakeEvaluationRepo) ListTemplates(ctx context.Context) ([]domain.ChecklistTemplate, error) {
	return f.templates, nil
}

func (f *fakeEvaluationRepo) GetTemplateItems(ctx context.Context, templateID int64) ([]domain.ChecklistTemplateItem, error) {
	return f.items[templateID], nil
}

func (f *fakeEvaluationRepo) CreateSubmission(ctx context.Context, submission *domain.EvaluationSubmission, items []domain.EvaluationItemResult) error {
	submission.CreatedAt = time.Now()
	f.submissions = append(f.submissions, *submission)
	f.results[submission.ID] = items
	return nil
}

func (f *fakeEvaluationRepo) ListSubmissions(ctx context.Context, filter domain.ReportFilter) ([]domain.EvaluationSubmission, error) {
	var out []domain.EvaluationSubmission
	// newest first, matching the SQL ordering
	for i := len(f.submissions) - 1; i >= 0; i-- {
		sub := f.submissions[i]
		if filter.Year > 0 && sub.Period.Year != filter.Year {
			continue
		}
		if filter.Month > 0 && sub.Period.Month != filter.Month {
			continue
		}
		if len(filter.StoreIDs) > 0 && !containsID(filter.StoreIDs, sub.StoreID) {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func (f *fakeEvaluationRepo) GetSubmission(ctx context.Context, id string) (*domain.EvaluationSubmission, []domain.EvaluationItemResult, error) {
	for _, sub := range f.submissions {
		if sub.ID == id {
			return &sub, f.results[id], nil
		}
	}
	return nil, nil, fmt.Errorf("submission %s not found", id)
}

type fakeComplaintRepo struct {
	weights map[string]float64
	records []domain.ComplaintRecord
}

func newFakeComplaintRepo(weights map[string]float64) *fakeComplaintRepo {
	if weights == nil {
		weights = make(map[string]float64)
	}
	return &fakeComplaintRepo{weights: weights}
}

func (f *fakeComplaintRepo) GetWeights(ctx context.Context) ([]domain.ComplaintWeight, error) {
	out := make([]domain.ComplaintWeight, 0, len(f.weights))
	for channel, weight := range f.weights {
		out = append(out, domain.ComplaintWeight{Channel: channel, Weight: weight})
	}
	return out, nil
}

func (f *fakeComplaintRepo) UpsertWeight(ctx context.Context, weight *domain.ComplaintWeight) error {
	f.weights[weight.Channel] = weight.Weight
	return nil
}

func (f *fakeComplaintRepo) UpsertRecord(ctx context.Context, record *domain.ComplaintRecord) error {
	for i, existing := range f.records {
		if existing.StoreID == record.StoreID && existing.Period == record.Period {
			record.ID = existing.ID
			f.records[i] = *record
			return nil
		}
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeComplaintRepo) ListRecords(ctx context.Context, filter domain.ReportFilter) ([]domain.ComplaintRecord, error) {
	var out []domain.ComplaintRecord
	for _, rec := range f.records {
		if filter.Year > 0 && rec.Period.Year != filter.Year {
			continue
		}
		if filter.Month > 0 && rec.Period.Month != filter.Month {
			continue
		}
		if len(filter.StoreIDs) > 0 && !containsID(filter.StoreIDs, rec.StoreID) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeComplaintRepo) GetRecordForPeriod(ctx context.Context, storeID int64, period domain.Period) (*domain.ComplaintRecord, error) {
	records, _ := f.ListRecords(ctx, domain.ReportFilter{
		StoreIDs: []int64{storeID}, Year: period.Year, Month: period.Month,
	})
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

type fakeFinanceRepo struct {
	snapshots []domain.FinancialSnapshot
}

func (f *fakeFinanceRepo) UpsertSnapshot(ctx context.Context, snapshot *domain.FinancialSnapshot) error {
	for i, existing := range f.snapshots {
		if existing.StoreID == snapshot.StoreID && existing.Period == snapshot.Period {
			snapshot.ID = existing.ID
			f.snapshots[i] = *snapshot
			return nil
		}
	}
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func (f *fakeFinanceRepo) ListSnapshots(ctx context.Context, filter domain.ReportFilter) ([]domain.FinancialSnapshot, error) {
	var out []domain.FinancialSnapshot
	for _, snap := range f.snapshots {
		if filter.Year > 0 && snap.Period.Year != filter.Year {
			continue
		}
		if filter.Month > 0 && snap.Period.Month != filter.Month {
			continue
		}
		if len(filter.StoreIDs) > 0 && !containsID(filter.StoreIDs, snap.StoreID) {
			continue
		}
		out = append(out, snap)
	}
	return out, nil
}

func (f *fakeFinanceRepo) GetSnapshotForPeriod(ctx context.Context, storeID int64, period domain.Period) (*domain.FinancialSnapshot, error) {
	snaps, _ := f.ListSnapshots(ctx, domain.ReportFilter{
		StoreIDs: []int64{storeID}, Year: period.Year, Month: period.Month,
	})
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[0], nil
}

type fakeSanctionRepo struct {
	records []domain.SanctionRecord
}

func (f *fakeSanctionRepo) CreateSanction(ctx context.Context, record *domain.SanctionRecord) error {
	record.IsActive = true
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeSanctionRepo) ListSanctions(ctx context.Context, filter domain.ReportFilter, activeOnly bool) ([]domain.SanctionRecord, error) {
	var out []domain.SanctionRecord
	for _, rec := range f.records {
		if activeOnly && !rec.IsActive {
			continue
		}
		if len(filter.StoreIDs) > 0 && !containsID(filter.StoreIDs, rec.StoreID) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeSanctionRepo) ListActiveTypes(ctx context.Context, storeID int64) ([]string, error) {
	var out []string
	for _, rec := range f.records {
		if rec.StoreID == storeID && rec.IsActive {
			out = append(out, rec.SanctionType)
		}
	}
	return out, nil
}

func (f *fakeSanctionRepo) RevokeSanction(ctx context.Context, id string) error {
	for i, rec := range f.records {
		if rec.ID == id {
			f.records[i].IsActive = false
			return nil
		}
	}
	return fmt.Errorf("sanction %s not found", id)
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
