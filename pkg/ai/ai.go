package ai

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/catalog"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
)

// prompt is the fixed analysis instruction sent to every provider
//
//go:embed analysis.prompt
var prompt string

const (
	maxOutputTokens     = 1000
	samplingTemperature = 0.7

	// DefaultProvider is used when the caller does not pick one
	DefaultProvider = "gemini"

	// FallbackProvider tags analyses produced by the rule engine
	FallbackProvider = "fallback"
)

func renderPrompt(product catalog.Product) string {
	rendered := strings.ReplaceAll(prompt, "${title}", product.Title)
	rendered = strings.ReplaceAll(rendered, "${price}", product.Price)
	rendered = strings.ReplaceAll(rendered, "${description}", product.Description)

	return rendered
}

// Provider is one interchangeable AI text-generation backend.
type Provider interface {
	Name() string
	IsConfigured() bool
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Analysis is the result of one product analysis. The product is echoed
// back exactly as received, not re-normalized.
type Analysis struct {
	Text        string          `json:"analysis"`
	Product     catalog.Product `json:"product"`
	Provider    string          `json:"provider"`
	GeneratedAt time.Time       `json:"timestamp"`
}

type ProviderStatus struct {
	Available  bool   `json:"available"`
	Configured bool   `json:"configured"`
	Status     string `json:"status"`
}

type Ai struct {
	providers map[string]Provider
	timeout   time.Duration
	monitor   *prometheus.Monitor
	logger    *logrus.Logger
}

func New(ctx context.Context, conf *config.Config, monitor *prometheus.Monitor, logger *logrus.Logger) *Ai {
	return &Ai{
		providers: map[string]Provider{
			"openai":    NewOpenAi(conf, monitor, logger),
			"gemini":    NewGemini(ctx, conf, monitor, logger),
			"anthropic": NewAnthropic(conf, monitor, logger),
		},
		timeout: time.Duration(conf.AnalysisTimeoutSeconds) * time.Second,
		monitor: monitor,
		logger:  logger,
	}
}

// Analyze runs the product through the requested provider. Quota
// exhaustion silently degrades to the rule-based fallback; credential
// problems and unknown provider failures are surfaced.
func (ai *Ai) Analyze(ctx context.Context, product catalog.Product, providerName string) (Analysis, error) {
	if strings.TrimSpace(product.Title) == "" {
		return Analysis{}, &ValidationError{Message: "Dados do produto são obrigatórios"}
	}

	if providerName == "" {
		providerName = DefaultProvider
	}

	provider, ok := ai.providers[providerName]
	if !ok {
		return Analysis{}, &ConfigurationError{Message: fmt.Sprintf("provider inválido: %s", providerName)}
	}
	if !provider.IsConfigured() {
		return Analysis{}, &ConfigurationError{Message: "IA não configurada ou provider inválido"}
	}

	cctx, cancel := context.WithTimeout(ctx, ai.timeout)
	defer cancel()

	text, err := provider.Generate(cctx, renderPrompt(product), maxOutputTokens, samplingTemperature)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuota):
			ai.logger.Warnf("provider %s exhausted, using fallback: %v", providerName, err)
			ai.monitor.FallbackTotal.WithLabelValues().Inc()
			ai.monitor.AnalysisTotal.WithLabelValues(FallbackProvider).Inc()

			return Analysis{
				Text:        Synthesize(product),
				Product:     product,
				Provider:    FallbackProvider,
				GeneratedAt: time.Now(),
			}, nil
		case errors.Is(err, ErrInvalidCredentials):
			return Analysis{}, &ConfigurationError{Message: fmt.Sprintf("credenciais inválidas para %s", providerName)}
		default:
			// timeouts land here as well - a slow provider is not quota
			return Analysis{}, &ProviderError{Provider: providerName, Message: err.Error()}
		}
	}

	ai.monitor.AnalysisTotal.WithLabelValues(providerName).Inc()

	return Analysis{
		Text:        text,
		Product:     product,
		Provider:    providerName,
		GeneratedAt: time.Now(),
	}, nil
}

// Status reports availability of every registered provider.
func (ai *Ai) Status() map[string]ProviderStatus {
	statuses := make(map[string]ProviderStatus, len(ai.providers))
	for name, provider := range ai.providers {
		configured := provider.IsConfigured()
		status := "Não configurado"
		if configured {
			status = "Ativo"
		}

		statuses[name] = ProviderStatus{
			Available:  configured,
			Configured: configured,
			Status:     status,
		}
	}

	return statuses
}
