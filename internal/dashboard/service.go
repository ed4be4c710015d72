package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/brewopshq/brewhaus-backend/pkg/redis"
)

// Totals is the dashboard aggregate payload.
type Totals struct {
	TotalBatches     int64 `json:"totalBatches"`
	TotalProducts    int64 `json:"totalProducts"`
	TotalIngredients int64 `json:"totalIngredients"`
	TotalGRNs        int64 `json:"totalGRNs"`
	TotalOrders      int64 `json:"totalOrders"`
	TotalUsers       int64 `json:"totalUsers"`
	TotalLocations   int64 `json:"totalLocations"`
	ExpiredBatches   int64 `json:"expiredBatches"`
}

// Cache is the slice of the redis client the dashboard uses. A nil cache
// means every request hits the database directly.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service serves the dashboard aggregate.
type Service interface {
	Totals(ctx context.Context) (*Totals, error)
}

type service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewService wires the dashboard service. cache may be nil.
func NewService(repo Repository, cache Cache, ttl time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{repo: repo, cache: cache, ttl: ttl, now: time.Now}, nil
}

func (s *service) Totals(ctx context.Context) (*Totals, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	totals, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, totals)
	return totals, nil
}

func (s *service) collect(ctx context.Context) (*Totals, error) {
	totals := &Totals{}
	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&totals.TotalBatches, s.repo.CountBatches},
		{&totals.TotalProducts, s.repo.CountProducts},
		{&totals.TotalIngredients, s.repo.CountIngredients},
		{&totals.TotalGRNs, s.repo.CountGRNs},
		{&totals.TotalOrders, s.repo.CountOrders},
		{&totals.TotalUsers, s.repo.CountUsers},
		{&totals.TotalLocations, s.repo.CountLocations},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count dashboard rows")
		}
		*c.dst = n
	}

	expired, err := s.repo.CountExpiredBatches(ctx, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count expired batches")
	}
	totals.ExpiredBatches = expired
	return totals, nil
}

// fromCache returns cached totals, or nil on miss or any cache fault.
func (s *service) fromCache(ctx context.Context) *Totals {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(cacheKeyPart))
	if err != nil {
		return nil
	}
	var totals Totals
	if err := json.Unmarshal([]byte(raw), &totals); err != nil {
		return nil
	}
	return &totals
}

func (s *service) store(ctx context.Context, totals *Totals) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(totals)
	if err != nil {
		return
	}
	// Cache faults never fail the request.
	_ = s.cache.Set(ctx, s.cache.CacheKey(cacheKeyPart), payload, s.ttl)
}

const cacheKeyPart = "dashboard"

var _ Cache = (*redis.Client)(nil)
