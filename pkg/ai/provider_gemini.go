package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

type Gemini struct {
	client *genai.Client
	apiKey string

	monitor *prometheus.Monitor
	logger  *logrus.Logger
}

func NewGemini(ctx context.Context, conf *config.Config, monitor *prometheus.Monitor, logger *logrus.Logger) *Gemini {
	gemini := &Gemini{
		apiKey:  conf.GeminiAPIKey,
		monitor: monitor,
		logger:  logger,
	}

	if conf.GeminiAPIKey == "" {
		return gemini
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  conf.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Warnf("could not create gemini client: %v", err)
		return gemini
	}

	gemini.client = client
	return gemini
}

func (p *Gemini) Name() string {
	return "gemini"
}

func (p *Gemini) IsConfigured() bool {
	return p.client != nil
}

func (p *Gemini) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	temp := float32(temperature)
	geminiConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		Temperature:     &temp,
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, geminiConfig)
	if err != nil {
		return "", p.classify(err)
	}

	if resp.UsageMetadata != nil {
		p.monitor.InputTokens.WithLabelValues(p.Name()).Add(float64(resp.UsageMetadata.PromptTokenCount))
		p.monitor.OutputTokens.WithLabelValues(p.Name()).Add(float64(resp.UsageMetadata.CandidatesTokenCount))
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}

	return text, nil
}

func (p *Gemini) classify(err error) error {
	var apierr genai.APIError
	if errors.As(err, &apierr) {
		switch apierr.Code {
		case http.StatusTooManyRequests:
			return fmt.Errorf("gemini: %s: %w", apierr.Message, ErrQuota)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("gemini: %s: %w", apierr.Message, ErrInvalidCredentials)
		}

		return fmt.Errorf("gemini error, code: %d, message: %s", apierr.Code, apierr.Message)
	}

	return fmt.Errorf("gemini client error: %w", err)
}
