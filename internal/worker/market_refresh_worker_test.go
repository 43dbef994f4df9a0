package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradedesk-portal/internal/marketdata"
)

type countingRefresher struct {
	mu       sync.Mutex
	calls    int
	sections []string
}

func (r *countingRefresher) RefreshSections(ctx context.Context, sections ...string) *marketdata.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.sections = sections
	return marketdata.FallbackSnapshot(time.Now())
}

func (r *countingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestMarketRefreshWorkerTicksUntilStopped(t *testing.T) {
	refresher := &countingRefresher{}
	w := NewMarketRefreshWorker(refresher, []string{marketdata.SectionIndices}, 20*time.Millisecond, 0)

	done := make(chan struct{})
	go func() {
		w.Start()
		close(done)
	}()

	require.Eventually(t, func() bool { return refresher.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, []string{marketdata.SectionIndices}, refresher.sections)
}

func TestNewMarketRefreshWorkerDefaults(t *testing.T) {
	w := NewMarketRefreshWorker(&countingRefresher{}, nil, 0, time.Hour)
	assert.Equal(t, time.Minute, w.interval)
	assert.Equal(t, time.Minute, w.timeout)
}
