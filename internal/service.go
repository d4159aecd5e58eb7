package internal

import (
	"context"
	"sync"
	"time"
)

// DashboardHook is called with every freshly built, unfiltered dashboard
type DashboardHook func(ctx context.Context, d *Dashboard) error

// DashboardService is the boundary between fetching and aggregation. A
// failed load never reaches the aggregator: the caller gets the last-good
// dashboard (marked stale) or an empty one, together with the fetch error.
type DashboardService struct {
	src      Source
	opts     LoadOptions
	timeout  time.Duration
	cache    *CacheManager
	cacheKey string

	mu    sync.Mutex
	hooks []DashboardHook
}

// NewDashboardService creates a service reading from src. cache may be nil.
func NewDashboardService(src Source, opts LoadOptions, timeout time.Duration, cache *CacheManager, cacheKey string) *DashboardService {
	return &DashboardService{
		src:      src,
		opts:     opts,
		timeout:  timeout,
		cache:    cache,
		cacheKey: cacheKey,
	}
}

// AddHook registers a hook run after each successful build
func (s *DashboardService) AddHook(hook DashboardHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// SourceName returns the name of the underlying source
func (s *DashboardService) SourceName() string {
	return s.src.Name()
}

// Dashboard loads a fresh snapshot and builds a dashboard listing issues
// that match filter. On a load failure the returned dashboard is never nil.
func (s *DashboardService) Dashboard(ctx context.Context, filter StatusFilter) (*Dashboard, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snap, err := LoadSnapshot(ctx, s.src, s.opts)
	if err != nil {
		LogError("Failed to load dashboard data: %v", err)
		return s.fallback(filter), err
	}

	full := BuildDashboard(snap, FilterAll)
	s.remember(full)
	s.runHooks(ctx, full)

	return full.WithFilter(filter), nil
}

// LastGood returns the cached dashboard for this source, if any
func (s *DashboardService) LastGood() (*Dashboard, bool) {
	if s.cache == nil {
		return nil, false
	}
	d, err := s.cache.LoadDashboard(s.cacheKey)
	if err != nil {
		return nil, false
	}
	return d, true
}

func (s *DashboardService) fallback(filter StatusFilter) *Dashboard {
	if d, ok := s.LastGood(); ok {
		LogWarn("Showing last loaded dashboard from %s", d.LoadedAt.Format(time.RFC3339))
		stale := d.WithFilter(filter)
		stale.Stale = true
		return stale
	}
	return EmptyDashboard(s.src.Name(), filter)
}

func (s *DashboardService) remember(d *Dashboard) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.SaveDashboard(s.cacheKey, d); err != nil {
		LogWarn("Failed to save cache: %v", err)
	}
}

func (s *DashboardService) runHooks(ctx context.Context, d *Dashboard) {
	s.mu.Lock()
	hooks := append([]DashboardHook(nil), s.hooks...)
	s.mu.Unlock()

	for _, hook := range hooks {
		if err := hook(ctx, d); err != nil {
			LogWarn("Dashboard hook failed: %v", err)
		}
	}
}
