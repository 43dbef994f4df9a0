package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradedesk-portal/internal/marketdata"
)

type stubIndices struct {
	calls atomic.Int32
	err   error
}

func (s *stubIndices) Indices(context.Context) ([]marketdata.Quote, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []marketdata.Quote{{Symbol: "SPY", Name: "SPDR S&P 500", Price: 600}}, nil
}

type stubNews struct{}

func (stubNews) News(context.Context) ([]marketdata.NewsItem, error) {
	return []marketdata.NewsItem{{Title: "Stocks rally", Link: "https://news.example/1"}}, nil
}

func TestSnapshotWithoutSourcesUsesFallbacks(t *testing.T) {
	svc := NewMarketService(nil, MarketSources{}, time.Minute)

	snap := svc.Snapshot(context.Background())
	require.NotNil(t, snap)
	assert.Equal(t, marketdata.FallbackIndices(), snap.Indices)
	assert.NotEmpty(t, snap.Sectors)
	for _, section := range append(QuoteSections(), ScrapedSections()...) {
		assert.Equal(t, marketdata.OriginFallback, snap.Origins[section], section)
	}
}

func TestSnapshotServesFromMemoryWithinTTL(t *testing.T) {
	indices := &stubIndices{}
	svc := NewMarketService(nil, MarketSources{Indices: indices}, time.Minute)
	now := time.Date(2025, time.March, 3, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	first := svc.Snapshot(context.Background())
	assert.Equal(t, marketdata.OriginLive, first.Origins[marketdata.SectionIndices])
	assert.Equal(t, "SPY", first.Indices[0].Symbol)

	svc.Snapshot(context.Background())
	assert.Equal(t, int32(1), indices.calls.Load())

	now = now.Add(2 * time.Minute)
	svc.Snapshot(context.Background())
	assert.Equal(t, int32(2), indices.calls.Load())
}

func TestRefreshSectionsMergesIntoCurrent(t *testing.T) {
	indices := &stubIndices{}
	svc := NewMarketService(nil, MarketSources{Indices: indices, News: stubNews{}}, time.Minute)

	assert.Nil(t, svc.Current())

	svc.RefreshSections(context.Background(), ScrapedSections()...)
	snap := svc.Current()
	require.NotNil(t, snap)
	assert.Equal(t, marketdata.OriginLive, snap.Origins[marketdata.SectionNews])
	assert.Equal(t, marketdata.OriginFallback, snap.Origins[marketdata.SectionIndices])
	assert.Equal(t, int32(0), indices.calls.Load())

	indices.err = errors.New("upstream down")
	after := svc.RefreshSections(context.Background(), QuoteSections()...)
	assert.Equal(t, marketdata.OriginFallback, after.Origins[marketdata.SectionIndices])
	assert.Equal(t, "Stocks rally", after.News[0].Title)
	assert.Equal(t, marketdata.OriginLive, after.Origins[marketdata.SectionNews])

	// the earlier snapshot is not mutated by the merge
	assert.Equal(t, marketdata.OriginFallback, snap.Origins[marketdata.SectionIndices])
	assert.NotSame(t, snap, after)
}

func TestRefreshSectionsIgnoresUnknownSection(t *testing.T) {
	svc := NewMarketService(nil, MarketSources{}, time.Minute)
	snap := svc.RefreshSections(context.Background(), "crypto")
	assert.Equal(t, marketdata.FallbackSnapshot(time.Now()).Indices, snap.Indices)
}
