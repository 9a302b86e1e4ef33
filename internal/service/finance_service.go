package service

import (
	"context"

	"github.com/andresuchdata/storeops/internal/cache"
	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/kpi"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FinanceInput is one store month of financial figures. Zero targets fall
// back to the store's configured monthly targets.
type FinanceInput struct {
	StoreID       int64         `json:"store_id"`
	Period        domain.Period `json:"period"`
	TotalSales    float64       `json:"total_sales"`
	TargetSales   float64       `json:"target_sales"`
	COGSAchieved  float64       `json:"cogs_achieved"`
	COGSTarget    float64       `json:"cogs_target"`
	TotalOpex     float64       `json:"total_opex"`
	OpexTargetPct float64       `json:"opex_target_pct"`
	TotalCrew     int           `json:"total_crew"`
}

type FinanceService struct {
	repo   repository.FinanceRepository
	stores repository.StoreRepository
	cache  cache.ScorecardCache
}

func NewFinanceService(repo repository.FinanceRepository, stores repository.StoreRepository, cacheImpl cache.ScorecardCache) *FinanceService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopScorecardCache()
	}
	return &FinanceService{repo: repo, stores: stores, cache: cacheImpl}
}

// Submit scores a financial snapshot and persists figures and scores
// together, replacing any earlier submission for the same period.
func (s *FinanceService) Submit(ctx context.Context, input FinanceInput) (*domain.FinancialSnapshot, error) {
	store, err := s.stores.GetStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	if input.TargetSales == 0 {
		input.TargetSales = store.TargetSales
	}
	if input.COGSTarget == 0 {
		input.COGSTarget = store.COGSTarget
	}
	if input.OpexTargetPct == 0 {
		input.OpexTargetPct = store.OpexTargetPct
	}
	if input.TotalCrew == 0 {
		input.TotalCrew = store.TotalCrew
	}

	scores := kpi.ScoreFinancial(kpi.FinancialInput{
		TotalSales:    input.TotalSales,
		TargetSales:   input.TargetSales,
		COGSAchieved:  input.COGSAchieved,
		COGSTarget:    input.COGSTarget,
		TotalOpex:     input.TotalOpex,
		OpexTargetPct: input.OpexTargetPct,
		TotalCrew:     input.TotalCrew,
	})

	snapshot := &domain.FinancialSnapshot{
		ID:                uuid.NewString(),
		StoreID:           input.StoreID,
		Period:            input.Period,
		TotalSales:        input.TotalSales,
		TargetSales:       input.TargetSales,
		COGSAchieved:      input.COGSAchieved,
		COGSTarget:        input.COGSTarget,
		TotalOpex:         input.TotalOpex,
		OpexTargetPct:     input.OpexTargetPct,
		TotalCrew:         input.TotalCrew,
		SalesScore:        scores.Sales,
		COGSScore:         scores.COGS,
		OpexScore:         scores.Opex,
		ProductivityScore: scores.Productivity,
	}

	if err := s.repo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	snapshot.StoreName = store.Name

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("finance: cache invalidation failed")
	}

	return snapshot, nil
}

func (s *FinanceService) List(ctx context.Context, filter domain.ReportFilter) ([]domain.FinancialSnapshot, error) {
	return s.repo.ListSnapshots(ctx, filter)
}
