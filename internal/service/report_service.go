package service

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/andresuchdata/storeops/internal/cache"
	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/kpi"
	"github.com/andresuchdata/storeops/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// scoreEpsilon bounds the allowed float drift between a persisted score and
// its recomputation before the dimension is flagged inconsistent.
const scoreEpsilon = 1e-9

const dashboardWorkers = 8

type ReportService struct {
	stores     repository.StoreRepository
	evals      repository.EvaluationRepository
	complaints repository.ComplaintRepository
	finance    repository.FinanceRepository
	sanctions  repository.SanctionRepository
	cache      cache.ScorecardCache
}

func NewReportService(
	stores repository.StoreRepository,
	evals repository.EvaluationRepository,
	complaints repository.ComplaintRepository,
	finance repository.FinanceRepository,
	sanctions repository.SanctionRepository,
	cacheImpl cache.ScorecardCache,
) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopScorecardCache()
	}
	return &ReportService{
		stores:     stores,
		evals:      evals,
		complaints: complaints,
		finance:    finance,
		sanctions:  sanctions,
		cache:      cacheImpl,
	}
}

// Scorecard builds one store's monthly KPI report. Every dimension carries
// both the score persisted at submission time and a recomputation from the
// stored raw inputs; the two paths must agree and drift is flagged rather
// than hidden.
func (s *ReportService) Scorecard(ctx context.Context, storeID int64, period domain.Period) (*domain.StoreScorecard, error) {
	store, err := s.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	card := &domain.StoreScorecard{
		StoreID:   store.ID,
		StoreName: store.Name,
		Period:    period,
	}

	if err := s.addChecklistScores(ctx, card, store, period); err != nil {
		return nil, err
	}
	if err := s.addComplaintScore(ctx, card, store, period); err != nil {
		return nil, err
	}
	if err := s.addFinancialScores(ctx, card, store, period); err != nil {
		return nil, err
	}
	if err := s.addSanctionScore(ctx, card, store); err != nil {
		return nil, err
	}

	s.summarize(card)

	return card, nil
}

// Dashboard assembles scorecards for every requested store in parallel,
// serving from cache when possible.
func (s *ReportService) Dashboard(ctx context.Context, filter domain.ReportFilter) (*domain.KPIDashboard, error) {
	if cached, ok, err := s.cache.GetDashboard(ctx, filter); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("reports: cache get dashboard failed")
	}

	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	stores = filterStores(stores, filter.StoreIDs)

	period := domain.Period{Year: filter.Year, Month: filter.Month}

	var (
		mu    sync.Mutex
		cards = make([]domain.StoreScorecard, 0, len(stores))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardWorkers)

	for _, store := range stores {
		g.Go(func() error {
			card, err := s.Scorecard(gctx, store.ID, period)
			if err != nil {
				return err
			}
			mu.Lock()
			cards = append(cards, *card)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(cards, func(i, j int) bool { return cards[i].StoreName < cards[j].StoreName })

	dashboard := &domain.KPIDashboard{Period: period, Scorecards: cards}

	if err := s.cache.SetDashboard(ctx, filter, dashboard); err != nil {
		log.Warn().Err(err).Msg("reports: cache set dashboard failed")
	}

	return dashboard, nil
}

func (s *ReportService) addChecklistScores(ctx context.Context, card *domain.StoreScorecard, store *domain.Store, period domain.Period) error {
	submissions, err := s.evals.ListSubmissions(ctx, domain.ReportFilter{
		StoreIDs: []int64{store.ID},
		Year:     period.Year,
		Month:    period.Month,
	})
	if err != nil {
		return err
	}

	// Submissions arrive newest first; keep the latest per template.
	latest := make(map[int64]domain.EvaluationSubmission)
	order := make([]int64, 0, 4)
	for _, sub := range submissions {
		if _, seen := latest[sub.TemplateID]; !seen {
			latest[sub.TemplateID] = sub
			order = append(order, sub.TemplateID)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, templateID := range order {
		sub := latest[templateID]

		_, items, err := s.evals.GetSubmission(ctx, sub.ID)
		if err != nil {
			return err
		}

		checklist := make([]kpi.ChecklistItem, 0, len(items))
		for _, item := range items {
			checklist = append(checklist, kpi.ChecklistItem{
				PointValue: item.PointValue,
				Status:     kpi.ItemStatus(item.Status),
			})
		}

		recomputed, err := kpi.AdjustChecklist(checklist)
		if err != nil {
			return err
		}

		card.Checklists = append(card.Checklists, domainScore(sub.TemplateName, sub.KPIScore, recomputed.Score))
	}

	return nil
}

func (s *ReportService) addComplaintScore(ctx context.Context, card *domain.StoreScorecard, store *domain.Store, period domain.Period) error {
	record, err := s.complaints.GetRecordForPeriod(ctx, store.ID, period)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	weights, err := s.complaints.GetWeights(ctx)
	if err != nil {
		return err
	}
	weightTable := make(map[string]float64, len(weights))
	for _, w := range weights {
		weightTable[w.Channel] = w.Weight
	}

	counts := map[string]int{
		kpi.ChannelWhatsApp:     record.WhatsApp,
		kpi.ChannelSocialMedia:  record.SocialMedia,
		kpi.ChannelGMaps:        record.GMaps,
		kpi.ChannelOnlineOrder:  record.OnlineOrder,
		kpi.ChannelLateHandling: record.LateHandling,
	}

	weightedTotal, err := kpi.WeightedComplaints(counts, weightTable)
	if err != nil {
		return err
	}

	score := domainScore("Complaints", record.KPIScore, kpi.ComplaintScore(weightedTotal, store.AvgCustomersPerDay))
	card.Complaints = &score
	card.WeightedComplaint = record.WeightedTotal

	return nil
}

func (s *ReportService) addFinancialScores(ctx context.Context, card *domain.StoreScorecard, store *domain.Store, period domain.Period) error {
	snapshot, err := s.finance.GetSnapshotForPeriod(ctx, store.ID, period)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	recomputed := kpi.ScoreFinancial(kpi.FinancialInput{
		TotalSales:    snapshot.TotalSales,
		TargetSales:   snapshot.TargetSales,
		COGSAchieved:  snapshot.COGSAchieved,
		COGSTarget:    snapshot.COGSTarget,
		TotalOpex:     snapshot.TotalOpex,
		OpexTargetPct: snapshot.OpexTargetPct,
		TotalCrew:     snapshot.TotalCrew,
	})

	card.Financial = []domain.DomainScore{
		domainScore("Sales", snapshot.SalesScore, recomputed.Sales),
		domainScore("COGS", snapshot.COGSScore, recomputed.COGS),
		domainScore("OPEX", snapshot.OpexScore, recomputed.Opex),
		domainScore("Productivity", snapshot.ProductivityScore, recomputed.Productivity),
	}

	return nil
}

func (s *ReportService) addSanctionScore(ctx context.Context, card *domain.StoreScorecard, store *domain.Store) error {
	types, err := s.sanctions.ListActiveTypes(ctx, store.ID)
	if err != nil {
		return err
	}

	score := kpi.AggregateSanctionScore(types, store.TotalCrew)
	ds := domainScore("Sanctions", score, score)
	card.Sanctions = &ds
	card.ActiveSanctions = len(types)

	return nil
}

func (s *ReportService) summarize(card *domain.StoreScorecard) {
	var (
		sum   float64
		count int
	)

	add := func(ds domain.DomainScore) {
		sum += ds.Stored
		count++
	}

	for _, ds := range card.Checklists {
		add(ds)
	}
	for _, ds := range card.Financial {
		add(ds)
	}
	if card.Complaints != nil {
		add(*card.Complaints)
	}
	if card.Sanctions != nil {
		add(*card.Sanctions)
	}

	card.ScoredDimensions = count
	if count > 0 {
		card.OverallScore = sum / float64(count)
	}
}

func domainScore(name string, stored, recomputed float64) domain.DomainScore {
	return domain.DomainScore{
		Domain:     name,
		Stored:     stored,
		Recomputed: recomputed,
		Consistent: math.Abs(stored-recomputed) <= scoreEpsilon,
	}
}

func filterStores(stores []domain.Store, ids []int64) []domain.Store {
	if len(ids) == 0 {
		return stores
	}

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	filtered := stores[:0]
	for _, store := range stores {
		if _, ok := wanted[store.ID]; ok {
			filtered = append(filtered, store)
		}
	}
	return filtered
}
