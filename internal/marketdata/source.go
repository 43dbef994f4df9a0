package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tradedesk-portal/internal/config"
)

var (
	// ErrUnexpectedShape is returned when a payload does not match the adapter's declared shape
	ErrUnexpectedShape = errors.New("unexpected payload shape")
	// ErrEmpty is returned when a well-formed payload carries no usable entries
	ErrEmpty = errors.New("empty payload")
	// ErrNotConfigured is returned when a source has no URL
	ErrNotConfigured = errors.New("source not configured")
)

// IndexSource provides index quotes
type IndexSource interface {
	Indices(ctx context.Context) ([]Quote, error)
}

// SectorSource provides sector performance
type SectorSource interface {
	Sectors(ctx context.Context) ([]SectorPerformance, error)
}

// MoverSource provides the top gainers and losers
type MoverSource interface {
	Movers(ctx context.Context) (Movers, error)
}

// NewsSource provides market headlines
type NewsSource interface {
	News(ctx context.Context) ([]NewsItem, error)
}

// SplitSource provides stock splits
type SplitSource interface {
	Splits(ctx context.Context) ([]StockSplit, error)
}

// Client fetches market data over HTTP. Each method makes exactly one attempt.
type Client struct {
	httpClient *http.Client
	indicesURL string
	sectorsURL string
	gainersURL string
	losersURL  string
}

// NewClient creates a Client from configuration
func NewClient(cfg config.MarketConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		indicesURL: cfg.IndicesURL,
		sectorsURL: cfg.SectorsURL,
		gainersURL: cfg.GainersURL,
		losersURL:  cfg.LosersURL,
	}
}

var (
	_ IndexSource  = (*Client)(nil)
	_ SectorSource = (*Client)(nil)
	_ MoverSource  = (*Client)(nil)
)

// Indices expects {"quotes":[{"symbol","name","price","change","changePercent"}]}
func (c *Client) Indices(ctx context.Context) ([]Quote, error) {
	var payload struct {
		Quotes *[]struct {
			Symbol        string   `json:"symbol"`
			Name          string   `json:"name"`
			Price         *float64 `json:"price"`
			Change        float64  `json:"change"`
			ChangePercent float64  `json:"changePercent"`
		} `json:"quotes"`
	}
	if err := c.getJSON(ctx, c.indicesURL, &payload); err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	if payload.Quotes == nil {
		return nil, fmt.Errorf("indices: %w: missing quotes", ErrUnexpectedShape)
	}

	quotes := make([]Quote, 0, len(*payload.Quotes))
	for _, q := range *payload.Quotes {
		if q.Symbol == "" || q.Price == nil {
			return nil, fmt.Errorf("indices: %w: quote without symbol or price", ErrUnexpectedShape)
		}
		quotes = append(quotes, Quote{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         *q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		})
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("indices: %w", ErrEmpty)
	}
	return quotes, nil
}

// Sectors expects [{"sector":"Technology","changesPercentage":"1.23%"}]
func (c *Client) Sectors(ctx context.Context) ([]SectorPerformance, error) {
	var payload []struct {
		Sector            string `json:"sector"`
		ChangesPercentage string `json:"changesPercentage"`
	}
	if err := c.getJSON(ctx, c.sectorsURL, &payload); err != nil {
		return nil, fmt.Errorf("sectors: %w", err)
	}

	sectors := make([]SectorPerformance, 0, len(payload))
	for _, s := range payload {
		if s.Sector == "" {
			return nil, fmt.Errorf("sectors: %w: entry without sector", ErrUnexpectedShape)
		}
		pct, err := parsePercent(s.ChangesPercentage)
		if err != nil {
			return nil, fmt.Errorf("sectors: %w: %v", ErrUnexpectedShape, err)
		}
		sectors = append(sectors, SectorPerformance{Sector: s.Sector, ChangePercent: pct})
	}
	if len(sectors) == 0 {
		return nil, fmt.Errorf("sectors: %w", ErrEmpty)
	}
	return sectors, nil
}

// Movers expects two lists of [{"symbol","name","price","change","changesPercentage"}]
func (c *Client) Movers(ctx context.Context) (Movers, error) {
	gainers, err := c.moverList(ctx, c.gainersURL)
	if err != nil {
		return Movers{}, fmt.Errorf("gainers: %w", err)
	}
	losers, err := c.moverList(ctx, c.losersURL)
	if err != nil {
		return Movers{}, fmt.Errorf("losers: %w", err)
	}
	return Movers{Gainers: gainers, Losers: losers}, nil
}

func (c *Client) moverList(ctx context.Context, url string) ([]Mover, error) {
	var payload []struct {
		Symbol            string   `json:"symbol"`
		Name              string   `json:"name"`
		Price             *float64 `json:"price"`
		Change            float64  `json:"change"`
		ChangesPercentage float64  `json:"changesPercentage"`
	}
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	movers := make([]Mover, 0, len(payload))
	for _, m := range payload {
		if m.Symbol == "" || m.Price == nil {
			return nil, fmt.Errorf("%w: mover without symbol or price", ErrUnexpectedShape)
		}
		movers = append(movers, Mover{
			Symbol:        m.Symbol,
			Name:          m.Name,
			Price:         *m.Price,
			Change:        m.Change,
			ChangePercent: m.ChangesPercentage,
		})
	}
	if len(movers) == 0 {
		return nil, ErrEmpty
	}
	return movers, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	if url == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return nil
}

// parsePercent accepts "1.23%", "-0.5" or "+2%"
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, errors.New("empty percentage")
	}
	return strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
}
