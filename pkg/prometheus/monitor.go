package prometheus

import "github.com/prometheus/client_golang/prometheus"

// Monitor represents a Prometheus monitor
// It contains Prometheus registry and all available metrics
type Monitor struct {
	Registry *prometheus.Registry

	CatalogProducts *prometheus.GaugeVec
	LastScrape      *prometheus.GaugeVec
	ScrapeDuration  *prometheus.GaugeVec
	ScrapesTotal    *prometheus.CounterVec
	DroppedRecords  *prometheus.CounterVec
	SearchesTotal   *prometheus.CounterVec

	AnalysisTotal *prometheus.CounterVec
	FallbackTotal *prometheus.CounterVec
	InputTokens   *prometheus.CounterVec
	OutputTokens  *prometheus.CounterVec
}

// New creates a new Monitor
func New() *Monitor {
	reg := prometheus.NewRegistry()
	monitor := &Monitor{
		Registry: reg,

		CatalogProducts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vitrine_catalog_products",
			Help: "Number of products in the current catalog snapshot",
		}, []string{}),

		LastScrape: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vitrine_last_scrape",
			Help: "Unix timestamp of the last successful feed scrape",
		}, []string{}),

		ScrapeDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vitrine_scrape_duration_seconds",
			Help: "Duration of the last feed scrape in seconds",
		}, []string{}),

		ScrapesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_scrapes_total",
			Help: "Total number of feed scrapes by result",
		}, []string{"result"}),

		DroppedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_dropped_records_total",
			Help: "Total number of feed records dropped during normalization",
		}, []string{}),

		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_searches_total",
			Help: "Total number of catalog searches",
		}, []string{}),

		AnalysisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_analysis_total",
			Help: "Total number of product analyses by provider",
		}, []string{"provider"}),

		FallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_fallback_total",
			Help: "Total number of analyses served by the rule-based fallback",
		}, []string{}),

		InputTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_ai_input_tokens",
			Help: "Total number of input tokens by provider",
		}, []string{"provider"}),

		OutputTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrine_ai_output_tokens",
			Help: "Total number of output tokens by provider",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		monitor.CatalogProducts,
		monitor.LastScrape,
		monitor.ScrapeDuration,
		monitor.ScrapesTotal,
		monitor.DroppedRecords,
		monitor.SearchesTotal,
		monitor.AnalysisTotal,
		monitor.FallbackTotal,
		monitor.InputTokens,
		monitor.OutputTokens,
	)

	return monitor
}
