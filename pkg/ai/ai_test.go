package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/vitrine/backend/pkg/catalog"
	"github.com/vitrine/backend/pkg/prometheus"
)

type fakeProvider struct {
	name       string
	configured bool
	text       string
	err        error
	delay      time.Duration
}

func (p *fakeProvider) Name() string {
	return p.name
}

func (p *fakeProvider) IsConfigured() bool {
	return p.configured
}

func (p *fakeProvider) Generate(ctx context.Context, _ string, _ int, _ float64) (string, error) {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("fake client error: %w", ctx.Err())
		case <-time.After(p.delay):
		}
	}

	if p.err != nil {
		return "", p.err
	}

	return p.text, nil
}

func createAi(provider Provider) *Ai {
	logger := logrus.New()
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	return &Ai{
		providers: map[string]Provider{provider.Name(): provider},
		timeout:   200 * time.Millisecond,
		monitor:   prometheus.New(),
		logger:    logger,
	}
}

func testProduct() catalog.Product {
	return catalog.Product{
		Title:       "Babydoll Renda",
		Price:       "R$ 45,00",
		Description: "Lindo babydoll...",
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true, text: "análise detalhada"})

	analysis, err := brain.Analyze(context.Background(), testProduct(), "gemini")

	assert.NoError(t, err)
	assert.Equal(t, "análise detalhada", analysis.Text)
	assert.Equal(t, "gemini", analysis.Provider)
	assert.Equal(t, "Babydoll Renda", analysis.Product.Title)
	assert.False(t, analysis.GeneratedAt.IsZero())
}

func TestAnalyzeDefaultsToGemini(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true, text: "ok"})

	analysis, err := brain.Analyze(context.Background(), testProduct(), "")

	assert.NoError(t, err)
	assert.Equal(t, "gemini", analysis.Provider)
}

func TestAnalyzeEmptyTitle(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true})

	_, err := brain.Analyze(context.Background(), catalog.Product{Title: "   "}, "gemini")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAnalyzeUnknownProvider(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true})

	_, err := brain.Analyze(context.Background(), testProduct(), "deepthought")

	var configErr *ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestAnalyzeUnconfiguredProvider(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: false})

	_, err := brain.Analyze(context.Background(), testProduct(), "gemini")

	var configErr *ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestAnalyzeQuotaFallsBack(t *testing.T) {
	quotaErr := fmt.Errorf("gemini: resource exhausted (429): %w", ErrQuota)
	brain := createAi(&fakeProvider{name: "gemini", configured: true, err: quotaErr})

	analysis, err := brain.Analyze(context.Background(), testProduct(), "gemini")

	assert.NoError(t, err)
	assert.Equal(t, FallbackProvider, analysis.Provider)
	assert.Contains(t, analysis.Text, "Babydoll Renda")
	assert.Contains(t, analysis.Text, "Score Final")
}

func TestAnalyzeInvalidCredentials(t *testing.T) {
	credsErr := fmt.Errorf("gemini: invalid api key: %w", ErrInvalidCredentials)
	brain := createAi(&fakeProvider{name: "gemini", configured: true, err: credsErr})

	_, err := brain.Analyze(context.Background(), testProduct(), "gemini")

	var configErr *ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestAnalyzeUnknownErrorIsSurfaced(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true, err: errors.New("model exploded")})

	_, err := brain.Analyze(context.Background(), testProduct(), "gemini")

	var providerErr *ProviderError
	assert.ErrorAs(t, err, &providerErr)
	assert.Contains(t, providerErr.Message, "model exploded")
}

// a slow provider is a fatal provider error, never a silent fallback
func TestAnalyzeTimeoutIsFatal(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true, text: "late", delay: time.Second})

	_, err := brain.Analyze(context.Background(), testProduct(), "gemini")

	var providerErr *ProviderError
	assert.ErrorAs(t, err, &providerErr)
}

func TestRenderPrompt(t *testing.T) {
	rendered := renderPrompt(testProduct())

	assert.Contains(t, rendered, "Produto: Babydoll Renda")
	assert.Contains(t, rendered, "Preço: R$ 45,00")
	assert.Contains(t, rendered, "Score geral de 1-10")
	assert.Contains(t, rendered, "português brasileiro")
	assert.NotContains(t, rendered, "${title}")
	assert.NotContains(t, rendered, "${price}")
	assert.NotContains(t, rendered, "${description}")
}

func TestStatus(t *testing.T) {
	brain := createAi(&fakeProvider{name: "gemini", configured: true})
	brain.providers["openai"] = &fakeProvider{name: "openai", configured: false}

	statuses := brain.Status()

	assert.Equal(t, 2, len(statuses))
	assert.True(t, statuses["gemini"].Available)
	assert.Equal(t, "Ativo", statuses["gemini"].Status)
	assert.False(t, statuses["openai"].Available)
	assert.Equal(t, "Não configurado", statuses["openai"].Status)
}
