package worker

import (
	"context"
	"time"

	"github.com/tradedesk-portal/internal/marketdata"
	"go.uber.org/zap"
)

// SectionRefresher refetches named market sections
type SectionRefresher interface {
	RefreshSections(ctx context.Context, sections ...string) *marketdata.Snapshot
}

// MarketRefreshWorker periodically refreshes the quote-driven market sections
type MarketRefreshWorker struct {
	market   SectionRefresher
	sections []string
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewMarketRefreshWorker creates a new market refresh worker
func NewMarketRefreshWorker(market SectionRefresher, sections []string, interval, timeout time.Duration) *MarketRefreshWorker {
	if interval <= 0 {
		interval = time.Minute // Default 1 minute refresh interval
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &MarketRefreshWorker{
		market:   market,
		sections: sections,
		interval: interval,
		timeout:  timeout,
		logger:   zap.L().Named("market_worker"),
		stopChan: make(chan struct{}),
	}
}

// Start refreshes once immediately, then on every tick until Stop
func (w *MarketRefreshWorker) Start() {
	w.logger.Info("market refresh worker started", zap.Duration("interval", w.interval), zap.Strings("sections", w.sections))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh()
	for {
		select {
		case <-ticker.C:
			w.refresh()
		case <-w.stopChan:
			w.logger.Info("market refresh worker stopped")
			return
		}
	}
}

// Stop stops the refresh loop
func (w *MarketRefreshWorker) Stop() {
	close(w.stopChan)
}

func (w *MarketRefreshWorker) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	start := time.Now()
	snap := w.market.RefreshSections(ctx, w.sections...)
	if snap == nil {
		return
	}
	w.logger.Debug("market refreshed", zap.Duration("took", time.Since(start)), zap.Any("origins", snap.Origins))
}
