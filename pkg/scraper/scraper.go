package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/catalog"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
)

const (
	userAgent = "Mozilla/5.0"
	retries   = 3
)

// ErrAlreadyRunning is returned when a refresh is requested while a
// previous one is still in flight.
var ErrAlreadyRunning = errors.New("scrape already running")

// records are decoded one by one so a single malformed entry cannot
// poison the whole batch
type feedResponse struct {
	Products []json.RawMessage `json:"products"`
}

// Scraper fetches the upstream products.json feed, normalizes every
// record and swaps the catalog snapshot. A failed fetch never touches
// the live snapshot.
type Scraper struct {
	client  http.Client
	store   *catalog.Store
	config  *config.Config
	monitor *prometheus.Monitor
	logger  *logrus.Logger

	running atomic.Bool
}

func New(conf *config.Config, store *catalog.Store, monitor *prometheus.Monitor, logger *logrus.Logger) *Scraper {
	return &Scraper{
		client: http.Client{
			Timeout: time.Duration(conf.ScrapeTimeoutSeconds) * time.Second,
		},
		store:   store,
		config:  conf,
		monitor: monitor,
		logger:  logger,
	}
}

// Refresh fetches the feed and replaces the catalog snapshot.
// Returns the number of products in the new snapshot.
func (s *Scraper) Refresh(ctx context.Context) (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRunning
	}
	defer s.running.Store(false)

	start := time.Now()

	feed, err := s.fetchFeed(ctx)
	if err != nil {
		s.monitor.ScrapesTotal.WithLabelValues("error").Inc()
		return 0, err
	}

	now := time.Now()
	products := make([]catalog.Product, 0, len(feed.Products))
	dropped := 0
	for _, raw := range feed.Products {
		var rec catalog.FeedRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.logger.Warnf("Skipping malformed feed record: %v", err)
			dropped++
			continue
		}

		product, ok := catalog.Normalize(rec, s.config.ShopBaseURL, now)
		if !ok {
			dropped++
			continue
		}
		products = append(products, product)
	}

	s.store.ReplaceAll(products)

	s.monitor.ScrapesTotal.WithLabelValues("ok").Inc()
	s.monitor.CatalogProducts.WithLabelValues().Set(float64(len(products)))
	s.monitor.LastScrape.WithLabelValues().SetToCurrentTime()
	s.monitor.ScrapeDuration.WithLabelValues().Set(time.Since(start).Seconds())
	s.monitor.DroppedRecords.WithLabelValues().Add(float64(dropped))

	s.logger.WithFields(logrus.Fields{
		"products": len(products),
		"dropped":  dropped,
		"duration": time.Since(start).String(),
	}).Info("Catalog refreshed")

	return len(products), nil
}

func (s *Scraper) fetchFeed(ctx context.Context) (*feedResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.FeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	var resp *http.Response
	attempts := retries
	for attempts > 0 {
		resp, err = s.client.Do(req)
		if err != nil || resp.StatusCode != http.StatusOK {
			if resp != nil {
				resp.Body.Close()
			}
			attempts--
		} else {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("could not get response from feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	defer resp.Body.Close()

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("could not decode feed: %w", err)
	}

	return &feed, nil
}
