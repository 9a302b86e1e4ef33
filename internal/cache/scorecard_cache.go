package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/storeops/internal/config"
	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix     = "kpi:dashboard"
	dashboardScanBatchSize = 100
)

// ScorecardCache holds computed KPI dashboards keyed by filter. Any write to
// an underlying aggregate invalidates the whole prefix.
type ScorecardCache interface {
	GetDashboard(ctx context.Context, filter domain.ReportFilter) (*domain.KPIDashboard, bool, error)
	SetDashboard(ctx context.Context, filter domain.ReportFilter, dashboard *domain.KPIDashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisScorecardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopScorecardCache struct{}

func NewScorecardCache(cfg config.CacheConfig) (ScorecardCache, error) {
	if !cfg.Enabled {
		return &noopScorecardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisScorecardCache{client: client, ttl: ttl}, nil
}

func NewNoopScorecardCache() ScorecardCache {
	return &noopScorecardCache{}
}

func (c *redisScorecardCache) GetDashboard(ctx context.Context, filter domain.ReportFilter) (*domain.KPIDashboard, bool, error) {
	key := buildDashboardKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.KPIDashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisScorecardCache) SetDashboard(ctx context.Context, filter domain.ReportFilter, dashboard *domain.KPIDashboard) error {
	key := buildDashboardKey(filter)
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisScorecardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, dashboardScanBatchSize)
}

func (n *noopScorecardCache) GetDashboard(ctx context.Context, filter domain.ReportFilter) (*domain.KPIDashboard, bool, error) {
	return nil, false, nil
}

func (n *noopScorecardCache) SetDashboard(ctx context.Context, filter domain.ReportFilter, dashboard *domain.KPIDashboard) error {
	return nil
}

func (n *noopScorecardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDashboardKey(filter domain.ReportFilter) string {
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, dashboardFilterHash(filter))
}

func dashboardFilterHash(filter domain.ReportFilter) string {
	ids := make([]string, 0, len(filter.StoreIDs))
	for _, id := range filter.StoreIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	sort.Strings(ids)

	canonical := fmt.Sprintf("stores=%s|year=%d|month=%d|page=%d|size=%d",
		strings.Join(ids, ","), filter.Year, filter.Month, filter.Page, filter.PageSize)

	sum := sha1.Sum([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
