package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tradedesk-portal/internal/marketdata"
	"go.uber.org/zap"
)

const (
	marketSnapshotKey = "market:snapshot"
	// MarketUpdatesChannel carries every refreshed snapshot as JSON
	MarketUpdatesChannel = "market_updates"
)

// MarketSources are the upstreams a MarketService reads from. Nil sources use fallbacks.
type MarketSources struct {
	Indices marketdata.IndexSource
	Sectors marketdata.SectorSource
	Movers  marketdata.MoverSource
	News    marketdata.NewsSource
	Splits  marketdata.SplitSource
}

// QuoteSections are refreshed by the ticker worker
func QuoteSections() []string {
	return []string{marketdata.SectionIndices, marketdata.SectionSectors, marketdata.SectionMovers}
}

// ScrapedSections are refreshed by the scrape schedule
func ScrapedSections() []string {
	return []string{marketdata.SectionNews, marketdata.SectionSplits}
}

// MarketService serves the market dashboard snapshot.
// Lookups go memory, then redis, then a live fetch; failed sources use built-in fallbacks.
type MarketService struct {
	redis   *redis.Client
	sources MarketSources
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	snapshot    *marketdata.Snapshot
	snapshotMux sync.RWMutex
}

// NewMarketService creates a new MarketService. redisClient may be nil.
func NewMarketService(redisClient *redis.Client, sources MarketSources, ttl time.Duration) *MarketService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MarketService{
		redis:   redisClient,
		sources: sources,
		ttl:     ttl,
		now:     time.Now,
		logger:  zap.L().Named("market"),
	}
}

// Snapshot returns the freshest available snapshot; it never fails
func (s *MarketService) Snapshot(ctx context.Context) *marketdata.Snapshot {
	// Try memory cache first
	s.snapshotMux.RLock()
	snap := s.snapshot
	s.snapshotMux.RUnlock()
	if snap != nil && s.now().Sub(snap.UpdatedAt) < s.ttl {
		return snap
	}

	// Try Redis
	if cached := s.loadCached(ctx); cached != nil {
		s.replace(cached)
		return cached
	}

	return s.Refresh(ctx)
}

// Current returns the in-memory snapshot without fetching, or nil before the first refresh
func (s *MarketService) Current() *marketdata.Snapshot {
	s.snapshotMux.RLock()
	defer s.snapshotMux.RUnlock()
	return s.snapshot
}

// Refresh refetches every section
func (s *MarketService) Refresh(ctx context.Context) *marketdata.Snapshot {
	return s.RefreshSections(ctx, append(QuoteSections(), ScrapedSections()...)...)
}

// RefreshSections refetches the named sections concurrently and merges them into the
// current snapshot. All fetches complete before the snapshot is replaced.
func (s *MarketService) RefreshSections(ctx context.Context, sections ...string) *marketdata.Snapshot {
	updates := make([]func(*marketdata.Snapshot), len(sections))

	var wg sync.WaitGroup
	for i, section := range sections {
		wg.Add(1)
		go func(i int, section string) {
			defer wg.Done()
			updates[i] = s.fetchSection(ctx, section)
		}(i, section)
	}
	wg.Wait()

	s.snapshotMux.Lock()
	base := s.snapshot
	if base == nil {
		base = marketdata.FallbackSnapshot(s.now())
	}
	next := *base
	next.Origins = make(map[string]marketdata.Origin, len(base.Origins))
	for k, v := range base.Origins {
		next.Origins[k] = v
	}
	for _, apply := range updates {
		if apply != nil {
			apply(&next)
		}
	}
	next.UpdatedAt = s.now()
	snap := &next
	s.snapshot = snap
	s.snapshotMux.Unlock()

	s.store(ctx, snap)
	return snap
}

// fetchSection makes one attempt against a section's source and returns how to apply the result
func (s *MarketService) fetchSection(ctx context.Context, section string) func(*marketdata.Snapshot) {
	switch section {
	case marketdata.SectionIndices:
		v, err := marketdata.FallbackIndices(), errNoSource
		if s.sources.Indices != nil {
			var live []marketdata.Quote
			if live, err = s.sources.Indices.Indices(ctx); err == nil {
				v = live
			}
		}
		origin := s.origin(section, err)
		return func(n *marketdata.Snapshot) { n.Indices, n.Origins[section] = v, origin }

	case marketdata.SectionSectors:
		v, err := marketdata.FallbackSectors(), errNoSource
		if s.sources.Sectors != nil {
			var live []marketdata.SectorPerformance
			if live, err = s.sources.Sectors.Sectors(ctx); err == nil {
				v = live
			}
		}
		origin := s.origin(section, err)
		return func(n *marketdata.Snapshot) { n.Sectors, n.Origins[section] = v, origin }

	case marketdata.SectionMovers:
		v, err := marketdata.FallbackMovers(), errNoSource
		if s.sources.Movers != nil {
			var live marketdata.Movers
			if live, err = s.sources.Movers.Movers(ctx); err == nil {
				v = live
			}
		}
		origin := s.origin(section, err)
		return func(n *marketdata.Snapshot) { n.Movers, n.Origins[section] = v, origin }

	case marketdata.SectionNews:
		v, err := marketdata.FallbackNews(), errNoSource
		if s.sources.News != nil {
			var live []marketdata.NewsItem
			if live, err = s.sources.News.News(ctx); err == nil {
				v = live
			}
		}
		origin := s.origin(section, err)
		return func(n *marketdata.Snapshot) { n.News, n.Origins[section] = v, origin }

	case marketdata.SectionSplits:
		v, err := marketdata.FallbackSplits(), errNoSource
		if s.sources.Splits != nil {
			var live []marketdata.StockSplit
			if live, err = s.sources.Splits.Splits(ctx); err == nil {
				v = live
			}
		}
		origin := s.origin(section, err)
		return func(n *marketdata.Snapshot) { n.Splits, n.Origins[section] = v, origin }
	}

	s.logger.Warn("unknown market section", zap.String("section", section))
	return nil
}

var errNoSource = errors.New("no source configured")

func (s *MarketService) origin(section string, err error) marketdata.Origin {
	if err == nil {
		return marketdata.OriginLive
	}
	s.logger.Warn("market source failed, using fallback", zap.String("section", section), zap.Error(err))
	return marketdata.OriginFallback
}

func (s *MarketService) replace(snap *marketdata.Snapshot) {
	s.snapshotMux.Lock()
	s.snapshot = snap
	s.snapshotMux.Unlock()
}

func (s *MarketService) loadCached(ctx context.Context) *marketdata.Snapshot {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, marketSnapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis read failed", zap.Error(err))
		}
		return nil
	}
	var snap marketdata.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("discarding unreadable cached snapshot", zap.Error(err))
		return nil
	}
	return &snap
}

// store caches the snapshot in redis and publishes it for stream subscribers
func (s *MarketService) store(ctx context.Context, snap *marketdata.Snapshot) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("failed to encode snapshot", zap.Error(err))
		return
	}
	if err := s.redis.Set(ctx, marketSnapshotKey, data, s.ttl).Err(); err != nil {
		s.logger.Warn("redis write failed", zap.Error(err))
	}
	if err := s.redis.Publish(ctx, MarketUpdatesChannel, data).Err(); err != nil {
		s.logger.Warn("redis publish failed", zap.Error(err))
	}
}
