package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hako/durafmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/ai"
	"github.com/vitrine/backend/pkg/catalog"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
	"github.com/vitrine/backend/pkg/scraper"
	"github.com/vitrine/backend/pkg/utils"
)

type HandlerRepository struct {
	store   *catalog.Store
	scraper *scraper.Scraper
	ai      *ai.Ai
	config  *config.Config
	monitor *prometheus.Monitor
	logger  *logrus.Logger
}

// scrapeHandler refreshes the catalog from the upstream feed
func (hr *HandlerRepository) scrapeHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		hr.logger.Info("Loading products from upstream feed")

		count, err := hr.scraper.Refresh(r.Context())
		if err != nil {
			hr.logger.Errorf("Could not refresh catalog: %v", err)
			status := http.StatusInternalServerError
			if errors.Is(err, scraper.ErrAlreadyRunning) {
				status = http.StatusConflict
			}
			hr.writeError(w, status, err.Error())
			return
		}

		type output struct {
			Success bool              `json:"success"`
			Message string            `json:"message"`
			Data    []catalog.Product `json:"data"`
		}

		hr.writeJSON(w, output{
			Success: true,
			Message: fmt.Sprintf("%d produtos carregados com sucesso", count),
			Data:    hr.store.All(),
		})
	}
}

// productsHandler lists the current snapshot with optional search and limit
func (hr *HandlerRepository) productsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		products := hr.store.All()

		search := r.URL.Query().Get("search")
		filtered := catalog.Search(products, search)
		if search != "" {
			hr.monitor.SearchesTotal.WithLabelValues().Inc()
		}

		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			limit, err := strconv.Atoi(rawLimit)
			if err != nil || limit < 0 {
				hr.writeError(w, http.StatusBadRequest, "limit inválido")
				return
			}
			filtered = catalog.Limit(filtered, limit)
		}

		type output struct {
			Success         bool              `json:"success"`
			Count           int               `json:"count"`
			TotalProducts   int               `json:"totalProducts"`
			LastScrape      *time.Time        `json:"lastScrape"`
			LastScrapeLocal string            `json:"lastScrapeLocal,omitempty"`
			LastScrapeAgo   string            `json:"lastScrapeAgo,omitempty"`
			Data            []catalog.Product `json:"data"`
		}

		data := output{
			Success:       true,
			Count:         len(filtered),
			TotalProducts: len(products),
			Data:          filtered,
		}

		if refreshedAt, ok := hr.store.LastRefreshedAt(); ok {
			data.LastScrape = &refreshedAt
			data.LastScrapeLocal = utils.FormatDate(refreshedAt)
			data.LastScrapeAgo = durafmt.Parse(time.Since(refreshedAt).Round(time.Second)).LimitFirstN(2).String()
		}

		hr.writeJSON(w, data)
	}
}

// analyzeHandler runs one product through the AI orchestrator
func (hr *HandlerRepository) analyzeHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		type input struct {
			ProductData *catalog.Product `json:"productData"`
			AiProvider  string           `json:"aiProvider"`
		}

		var data input
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			hr.writeError(w, http.StatusBadRequest, "Could not read post body")
			return
		}

		if data.ProductData == nil {
			hr.writeError(w, http.StatusBadRequest, "Dados do produto são obrigatórios")
			return
		}

		analysis, err := hr.ai.Analyze(r.Context(), *data.ProductData, data.AiProvider)
		if err != nil {
			hr.writeAnalysisError(w, err)
			return
		}

		type output struct {
			Success bool        `json:"success"`
			Data    ai.Analysis `json:"data"`
		}

		hr.writeJSON(w, output{Success: true, Data: analysis})
	}
}

// aiStatusHandler reports availability of the configured AI providers
func (hr *HandlerRepository) aiStatusHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		type output struct {
			Success bool                         `json:"success"`
			Data    map[string]ai.ProviderStatus `json:"data"`
		}

		hr.writeJSON(w, output{Success: true, Data: hr.ai.Status()})
	}
}

func (hr *HandlerRepository) healthHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		type output struct {
			Success  bool `json:"success"`
			Products int  `json:"products"`
		}

		hr.writeJSON(w, output{Success: true, Products: hr.store.Count()})
	}
}

// metricsHandler returns HTTP handler for metrics endpoint
func (hr *HandlerRepository) metricsHandler() http.Handler {
	return promhttp.HandlerFor(
		hr.monitor.Registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Registry:          hr.monitor.Registry,
		},
	)
}

func (hr *HandlerRepository) frontendHandler() http.Handler {
	return http.FileServer(http.Dir(hr.config.FrontendPath))
}

// writeAnalysisError maps the analysis error taxonomy to HTTP statuses.
// Quota exhaustion never reaches this point - it degrades to fallback.
func (hr *HandlerRepository) writeAnalysisError(w http.ResponseWriter, err error) {
	var validationErr *ai.ValidationError
	var configErr *ai.ConfigurationError
	var providerErr *ai.ProviderError

	switch {
	case errors.As(err, &validationErr):
		hr.writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &configErr):
		hr.writeError(w, http.StatusBadRequest, configErr.Message)
	case errors.As(err, &providerErr):
		hr.logger.Errorf("AI analysis error: %v", providerErr)
		hr.writeError(w, http.StatusBadGateway, providerErr.Error())
	default:
		hr.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (hr *HandlerRepository) writeError(w http.ResponseWriter, status int, message string) {
	type output struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(output{Success: false, Error: message}); err != nil {
		hr.logger.Errorf("Could not write response: %v", err)
	}
}

func (hr *HandlerRepository) writeJSON(w http.ResponseWriter, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Could not marshal data to JSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(res); err != nil {
		hr.logger.Errorf("Could not write response: %v", err)
	}
}
