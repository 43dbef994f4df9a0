package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/tradedesk-portal/internal/config"
	"github.com/tradedesk-portal/internal/marketdata"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (compatible; tradedesk-portal/1.0)"

// ErrNoItems is returned when a page was fetched but nothing could be extracted
var ErrNoItems = errors.New("no items extracted")

// Scraper extracts headlines from an RSS feed and stock splits from an HTML table
type Scraper struct {
	newsURL   string
	splitsURL string
	timeout   time.Duration
	maxItems  int
	logger    *zap.Logger
}

// New creates a Scraper from configuration
func New(cfg config.ScraperConfig) *Scraper {
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = 20
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Scraper{
		newsURL:   cfg.NewsFeedURL,
		splitsURL: cfg.SplitsURL,
		timeout:   timeout,
		maxItems:  maxItems,
		logger:    zap.L().Named("scraper"),
	}
}

func (s *Scraper) collector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)
	return c
}

// News reads the configured RSS feed
func (s *Scraper) News(ctx context.Context) ([]marketdata.NewsItem, error) {
	if s.newsURL == "" {
		return nil, marketdata.ErrNotConfigured
	}

	source := hostOf(s.newsURL)
	items := []marketdata.NewsItem{}
	var visitErr error

	c := s.collector(ctx)
	c.OnXML("//item", func(e *colly.XMLElement) {
		if len(items) >= s.maxItems {
			return
		}
		title := strings.TrimSpace(e.ChildText("title"))
		link := strings.TrimSpace(e.ChildText("link"))
		if title == "" || link == "" {
			return
		}
		itemSource := strings.TrimSpace(e.ChildText("source"))
		if itemSource == "" {
			itemSource = source
		}
		items = append(items, marketdata.NewsItem{
			Title:       title,
			Link:        link,
			Source:      itemSource,
			Summary:     plainText(e.ChildText("description")),
			PublishedAt: parsePubDate(e.ChildText("pubDate")),
		})
	})
	c.OnError(func(r *colly.Response, err error) {
		visitErr = err
		s.logger.Warn("news feed error", zap.String("url", r.Request.URL.String()), zap.Int("status", r.StatusCode), zap.Error(err))
	})

	if err := c.Visit(s.newsURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", s.newsURL, err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// Splits reads the first table on the configured page.
// Columns are located by header text: symbol, company, ratio and ex-date.
func (s *Scraper) Splits(ctx context.Context) ([]marketdata.StockSplit, error) {
	if s.splitsURL == "" {
		return nil, marketdata.ErrNotConfigured
	}

	splits := []marketdata.StockSplit{}
	var visitErr error

	c := s.collector(ctx)
	c.OnHTML("table", func(e *colly.HTMLElement) {
		if len(splits) > 0 {
			return
		}
		cols := columnIndex(e.DOM)
		if cols.symbol < 0 || cols.ratio < 0 {
			return
		}

		e.DOM.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			if len(splits) >= s.maxItems {
				return
			}
			cells := row.Find("td")
			symbol := cellText(cells, cols.symbol)
			ratio := cellText(cells, cols.ratio)
			if symbol == "" || ratio == "" {
				return
			}
			splits = append(splits, marketdata.StockSplit{
				Symbol:  strings.ToUpper(symbol),
				Company: cellText(cells, cols.company),
				Ratio:   ratio,
				ExDate:  cellText(cells, cols.exDate),
			})
		})
	})
	c.OnError(func(r *colly.Response, err error) {
		visitErr = err
		s.logger.Warn("splits page error", zap.String("url", r.Request.URL.String()), zap.Int("status", r.StatusCode), zap.Error(err))
	})

	if err := c.Visit(s.splitsURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", s.splitsURL, err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	if len(splits) == 0 {
		return nil, ErrNoItems
	}
	return splits, nil
}

type splitColumns struct {
	symbol, company, ratio, exDate int
}

func columnIndex(table *goquery.Selection) splitColumns {
	cols := splitColumns{symbol: -1, company: -1, ratio: -1, exDate: -1}
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		h := strings.ToLower(strings.TrimSpace(th.Text()))
		switch {
		case strings.Contains(h, "symbol") || strings.Contains(h, "ticker"):
			cols.symbol = i
		case strings.Contains(h, "company") || strings.Contains(h, "name"):
			cols.company = i
		case strings.Contains(h, "ratio"):
			cols.ratio = i
		case strings.Contains(h, "date"):
			cols.exDate = i
		}
	})
	return cols
}

func cellText(cells *goquery.Selection, i int) string {
	if i < 0 || i >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(i).Text())
}

// plainText strips markup some feeds embed in <description>
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
