package marketdata

import "time"

// Quote is the latest level of an index or ETF
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// SectorPerformance is the day's move of one market sector
type SectorPerformance struct {
	Sector        string  `json:"sector"`
	ChangePercent float64 `json:"change_percent"`
}

// Mover is a stock on the top gainers or losers list
type Mover struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// Movers groups the day's top gainers and losers
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// NewsItem is one normalised headline
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// StockSplit is one upcoming or recent split
type StockSplit struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
	Ratio   string `json:"ratio"`
	ExDate  string `json:"ex_date"`
}

// Origin tells whether a section came from a live source or the built-in fallback
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Snapshot is everything the market dashboard shows
type Snapshot struct {
	Indices   []Quote             `json:"indices"`
	Sectors   []SectorPerformance `json:"sectors"`
	Movers    Movers              `json:"movers"`
	News      []NewsItem          `json:"news"`
	Splits    []StockSplit        `json:"splits"`
	Origins   map[string]Origin   `json:"origins"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Section names used as Snapshot.Origins keys
const (
	SectionIndices = "indices"
	SectionSectors = "sectors"
	SectionMovers  = "movers"
	SectionNews    = "news"
	SectionSplits  = "splits"
)
