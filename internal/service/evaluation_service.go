package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/storeops/internal/cache"
	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/kpi"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EvaluationInput is a submitted checklist: one status per template item.
type EvaluationInput struct {
	StoreID     int64            `json:"store_id"`
	TemplateID  int64            `json:"template_id"`
	EvaluatedBy string           `json:"evaluated_by"`
	Period      domain.Period    `json:"period"`
	Statuses    map[int64]string `json:"statuses"` // item id -> none|cross|exclude
}

type EvaluationService struct {
	repo  repository.EvaluationRepository
	cache cache.ScorecardCache
}

func NewEvaluationService(repo repository.EvaluationRepository, cacheImpl cache.ScorecardCache) *EvaluationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopScorecardCache()
	}
	return &EvaluationService{repo: repo, cache: cacheImpl}
}

func (s *EvaluationService) ListTemplates(ctx context.Context) ([]domain.ChecklistTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

func (s *EvaluationService) GetTemplateItems(ctx context.Context, templateID int64) ([]domain.ChecklistTemplateItem, error) {
	return s.repo.GetTemplateItems(ctx, templateID)
}

// Submit scores a checklist and persists the result verbatim. Items absent
// from the input count as passed.
func (s *EvaluationService) Submit(ctx context.Context, input EvaluationInput) (*domain.EvaluationSubmission, error) {
	templateItems, err := s.repo.GetTemplateItems(ctx, input.TemplateID)
	if err != nil {
		return nil, err
	}
	if len(templateItems) == 0 {
		return nil, fmt.Errorf("template %d has no items", input.TemplateID)
	}

	checklist := make([]kpi.ChecklistItem, 0, len(templateItems))
	results := make([]domain.EvaluationItemResult, 0, len(templateItems))

	for _, ti := range templateItems {
		status, err := parseItemStatus(input.Statuses[ti.ID])
		if err != nil {
			return nil, err
		}

		item := kpi.ChecklistItem{PointValue: ti.PointValue, Status: status}
		checklist = append(checklist, item)
		results = append(results, domain.EvaluationItemResult{
			ItemID:     ti.ID,
			Text:       ti.Text,
			PointValue: ti.PointValue,
			Status:     string(status),
			Score:      kpi.ItemScore(item),
		})
	}

	adjusted, err := kpi.AdjustChecklist(checklist)
	if err != nil {
		return nil, err
	}

	submission := &domain.EvaluationSubmission{
		ID:            uuid.NewString(),
		StoreID:       input.StoreID,
		TemplateID:    input.TemplateID,
		EvaluatedBy:   input.EvaluatedBy,
		Period:        input.Period,
		InitialTotal:  adjusted.InitialTotal,
		AdjustedTotal: adjusted.AdjustedTotal,
		EarnedPoints:  adjusted.EarnedPoints,
		Percentage:    adjusted.Percentage,
		KPIScore:      adjusted.Score,
	}

	if err := s.repo.CreateSubmission(ctx, submission, results); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("evaluation: cache invalidation failed")
	}

	return submission, nil
}

func (s *EvaluationService) List(ctx context.Context, filter domain.ReportFilter) ([]domain.EvaluationSubmission, error) {
	return s.repo.ListSubmissions(ctx, filter)
}

func (s *EvaluationService) Get(ctx context.Context, id string) (*domain.EvaluationSubmission, []domain.EvaluationItemResult, error) {
	return s.repo.GetSubmission(ctx, id)
}

func parseItemStatus(raw string) (kpi.ItemStatus, error) {
	switch raw {
	case "", string(kpi.StatusNone):
		return kpi.StatusNone, nil
	case string(kpi.StatusCross):
		return kpi.StatusCross, nil
	case string(kpi.StatusExclude):
		return kpi.StatusExclude, nil
	default:
		return "", fmt.Errorf("unknown item status %q", raw)
	}
}
