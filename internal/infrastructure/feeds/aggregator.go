package feeds

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"SEOAutomation/internal/config"
	"SEOAutomation/internal/ports"
)

const (
	// ItemsPerFeed is how many of the most recent items are taken from each feed.
	ItemsPerFeed = 10
	// MaxHeadlines caps the combined headline list.
	MaxHeadlines = 50

	defaultTimeout     = 15 * time.Second
	defaultConcurrency = 4
	userAgent          = "SEOAutomation/1.0 (+feed reader)"
)

// Aggregator collects recent item titles from competitor feeds.
type Aggregator struct {
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
	policy      *bluemonday.Policy
	logger      *slog.Logger
}

var _ ports.HeadlineSource = (*Aggregator)(nil)

// feedResult is the outcome of one feed; failed feeds carry Err and no titles.
type feedResult struct {
	URL    string
	Titles []string
	Err    error
}

// NewAggregator wires an HTTP client; a nil client gets the configured timeout.
func NewAggregator(client *http.Client, cfg config.FeedsConfig, log *slog.Logger) *Aggregator {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Aggregator{
		client:      client,
		limiter:     limiter,
		concurrency: concurrency,
		policy:      bluemonday.StrictPolicy(),
		logger:      log,
	}
}

// FetchHeadlines returns up to MaxHeadlines distinct titles in feed order. Feeds that fail are skipped.
func (a *Aggregator) FetchHeadlines(ctx context.Context, feedURLs []string) []string {
	results := a.fetchAll(ctx, feedURLs)

	var titles []string
	for _, res := range results {
		if res.Err != nil {
			a.debug("skip feed", "url", res.URL, "error", res.Err)
			continue
		}
		titles = append(titles, res.Titles...)
	}

	headlines := dedupe(titles, MaxHeadlines)
	a.debug("headlines collected", "feeds", len(feedURLs), "headlines", len(headlines))
	return headlines
}

// fetchAll fetches feeds concurrently; results keep the order of feedURLs.
func (a *Aggregator) fetchAll(ctx context.Context, feedURLs []string) []feedResult {
	results := make([]feedResult, len(feedURLs))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, feedURL := range feedURLs {
		g.Go(func() error {
			titles, err := a.fetchFeed(ctx, feedURL)
			results[i] = feedResult{URL: feedURL, Titles: titles, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *Aggregator) fetchFeed(ctx context.Context, feedURL string) ([]string, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := newestFirst(feed.Items)
	if len(items) > ItemsPerFeed {
		items = items[:ItemsPerFeed]
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		if title := a.cleanTitle(item.Title); title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

func (a *Aggregator) cleanTitle(raw string) string {
	stripped := html.UnescapeString(a.policy.Sanitize(raw))
	return strings.Join(strings.Fields(stripped), " ")
}

// newestFirst orders items by publish (or update) date descending; undated items keep their feed order
// after dated ones.
func newestFirst(items []*gofeed.Item) []*gofeed.Item {
	sorted := make([]*gofeed.Item, 0, len(items))
	for _, item := range items {
		if item != nil {
			sorted = append(sorted, item)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := itemTime(sorted[i]), itemTime(sorted[j])
		if ti.IsZero() || tj.IsZero() {
			return !ti.IsZero() && tj.IsZero()
		}
		return ti.After(tj)
	})
	return sorted
}

func itemTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

func dedupe(titles []string, limit int) []string {
	out := make([]string, 0, min(len(titles), limit))
	seen := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
