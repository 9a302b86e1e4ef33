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

// ComplaintInput is one store month of per-channel complaint counts.
type ComplaintInput struct {
	StoreID      int64         `json:"store_id"`
	Period       domain.Period `json:"period"`
	WhatsApp     int           `json:"whatsapp"`
	SocialMedia  int           `json:"social_media"`
	GMaps        int           `json:"gmaps"`
	OnlineOrder  int           `json:"online_order"`
	LateHandling int           `json:"late_handling"`
}

type ComplaintService struct {
	repo   repository.ComplaintRepository
	stores repository.StoreRepository
	cache  cache.ScorecardCache
}

func NewComplaintService(repo repository.ComplaintRepository, stores repository.StoreRepository, cacheImpl cache.ScorecardCache) *ComplaintService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopScorecardCache()
	}
	return &ComplaintService{repo: repo, stores: stores, cache: cacheImpl}
}

// Submit aggregates the counts with the configured channel weights, scores
// the month, and persists counts, weighted total, and score together.
func (s *ComplaintService) Submit(ctx context.Context, input ComplaintInput) (*domain.ComplaintRecord, error) {
	store, err := s.stores.GetStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	weights, err := s.weightTable(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		kpi.ChannelWhatsApp:     input.WhatsApp,
		kpi.ChannelSocialMedia:  input.SocialMedia,
		kpi.ChannelGMaps:        input.GMaps,
		kpi.ChannelOnlineOrder:  input.OnlineOrder,
		kpi.ChannelLateHandling: input.LateHandling,
	}

	weightedTotal, err := kpi.WeightedComplaints(counts, weights)
	if err != nil {
		return nil, err
	}

	record := &domain.ComplaintRecord{
		ID:            uuid.NewString(),
		StoreID:       input.StoreID,
		Period:        input.Period,
		WhatsApp:      input.WhatsApp,
		SocialMedia:   input.SocialMedia,
		GMaps:         input.GMaps,
		OnlineOrder:   input.OnlineOrder,
		LateHandling:  input.LateHandling,
		WeightedTotal: weightedTotal,
		KPIScore:      kpi.ComplaintScore(weightedTotal, store.AvgCustomersPerDay),
	}

	if err := s.repo.UpsertRecord(ctx, record); err != nil {
		return nil, err
	}
	record.StoreName = store.Name

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("complaints: cache invalidation failed")
	}

	return record, nil
}

func (s *ComplaintService) List(ctx context.Context, filter domain.ReportFilter) ([]domain.ComplaintRecord, error) {
	return s.repo.ListRecords(ctx, filter)
}

func (s *ComplaintService) GetWeights(ctx context.Context) ([]domain.ComplaintWeight, error) {
	return s.repo.GetWeights(ctx)
}

// UpdateWeight changes one channel's severity weight. Already persisted
// records keep the score computed at submission time; reports recompute
// with the current table, so older months read as inconsistent until the
// seed recompute command is run.
func (s *ComplaintService) UpdateWeight(ctx context.Context, weight *domain.ComplaintWeight) error {
	if weight.Weight < 0 {
		return &kpi.ComputationError{Field: "weight", Value: weight.Weight, Reason: "must not be negative"}
	}

	if err := s.repo.UpsertWeight(ctx, weight); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("complaints: cache invalidation failed")
	}

	return nil
}

func (s *ComplaintService) weightTable(ctx context.Context) (map[string]float64, error) {
	rows, err := s.repo.GetWeights(ctx)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]float64, len(rows))
	for _, w := range rows {
		weights[w.Channel] = w.Weight
	}
	return weights, nil
}
