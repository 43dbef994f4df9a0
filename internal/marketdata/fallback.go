package marketdata

import "time"

// Built-in data shown when a live source fails. Each call returns fresh slices.

func FallbackIndices() []Quote {
	return []Quote{
		{Symbol: "^GSPC", Name: "S&P 500", Price: 5000.00},
		{Symbol: "^DJI", Name: "Dow Jones Industrial Average", Price: 38000.00},
		{Symbol: "^IXIC", Name: "NASDAQ Composite", Price: 16000.00},
		{Symbol: "^RUT", Name: "Russell 2000", Price: 2000.00},
		{Symbol: "^VIX", Name: "CBOE Volatility Index", Price: 15.00},
	}
}

func FallbackSectors() []SectorPerformance {
	return []SectorPerformance{
		{Sector: "Technology"},
		{Sector: "Healthcare"},
		{Sector: "Financial Services"},
		{Sector: "Consumer Cyclical"},
		{Sector: "Communication Services"},
		{Sector: "Industrials"},
		{Sector: "Consumer Defensive"},
		{Sector: "Energy"},
		{Sector: "Utilities"},
		{Sector: "Real Estate"},
		{Sector: "Basic Materials"},
	}
}

func FallbackMovers() Movers {
	return Movers{Gainers: []Mover{}, Losers: []Mover{}}
}

func FallbackNews() []NewsItem {
	return []NewsItem{
		{
			Title:  "Market news is temporarily unavailable",
			Source: "tradedesk",
		},
	}
}

func FallbackSplits() []StockSplit {
	return []StockSplit{}
}

// FallbackSnapshot is a snapshot made only of fallback sections
func FallbackSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Indices: FallbackIndices(),
		Sectors: FallbackSectors(),
		Movers:  FallbackMovers(),
		News:    FallbackNews(),
		Splits:  FallbackSplits(),
		Origins: map[string]Origin{
			SectionIndices: OriginFallback,
			SectionSectors: OriginFallback,
			SectionMovers:  OriginFallback,
			SectionNews:    OriginFallback,
			SectionSplits:  OriginFallback,
		},
		UpdatedAt: now,
	}
}
