package service

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/storeops/internal/cache"
	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/kpi"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SanctionInput is one new employee sanction.
type SanctionInput struct {
	StoreID        int64     `json:"store_id"`
	EmployeeName   string    `json:"employee_name"`
	SanctionType   string    `json:"sanction_type"`
	SanctionDate   time.Time `json:"sanction_date"`
	DurationMonths int       `json:"duration_months"`
}

type SanctionService struct {
	repo   repository.SanctionRepository
	stores repository.StoreRepository
	cache  cache.ScorecardCache
}

func NewSanctionService(repo repository.SanctionRepository, stores repository.StoreRepository, cacheImpl cache.ScorecardCache) *SanctionService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopScorecardCache()
	}
	return &SanctionService{repo: repo, stores: stores, cache: cacheImpl}
}

// Create validates the sanction type, scores it against the store's crew
// size, and persists the record. Expiry is never stored; the repository
// derives is_active from sanction_date and duration on every read.
func (s *SanctionService) Create(ctx context.Context, input SanctionInput) (*domain.SanctionRecord, error) {
	if _, ok := domain.ParseSanctionType(input.SanctionType); !ok {
		return nil, fmt.Errorf("unknown sanction type %q", input.SanctionType)
	}
	if input.DurationMonths <= 0 {
		return nil, fmt.Errorf("duration must be at least one month")
	}

	store, err := s.stores.GetStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	record := &domain.SanctionRecord{
		ID:             uuid.NewString(),
		StoreID:        input.StoreID,
		EmployeeName:   input.EmployeeName,
		SanctionType:   input.SanctionType,
		SanctionDate:   input.SanctionDate,
		DurationMonths: input.DurationMonths,
		KPIScore:       kpi.SanctionScore(input.SanctionType, store.TotalCrew),
	}

	if err := s.repo.CreateSanction(ctx, record); err != nil {
		return nil, err
	}
	record.StoreName = store.Name

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sanctions: cache invalidation failed")
	}

	return record, nil
}

func (s *SanctionService) List(ctx context.Context, filter domain.ReportFilter, activeOnly bool) ([]domain.SanctionRecord, error) {
	return s.repo.ListSanctions(ctx, filter, activeOnly)
}

// StoreScore computes the aggregate sanction KPI for one store from its
// currently active sanctions.
func (s *SanctionService) StoreScore(ctx context.Context, storeID int64, totalCrew int) (float64, int, error) {
	types, err := s.repo.ListActiveTypes(ctx, storeID)
	if err != nil {
		return 0, 0, err
	}
	return kpi.AggregateSanctionScore(types, totalCrew), len(types), nil
}

func (s *SanctionService) Revoke(ctx context.Context, id string) error {
	if err := s.repo.RevokeSanction(ctx, id); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sanctions: cache invalidation failed")
	}

	return nil
}
