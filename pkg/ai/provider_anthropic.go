package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
)

type Anthropic struct {
	client *anthropic.Client
	apiKey string

	monitor *prometheus.Monitor
	logger  *logrus.Logger
}

func NewAnthropic(conf *config.Config, monitor *prometheus.Monitor, logger *logrus.Logger) *Anthropic {
	return &Anthropic{
		client:  anthropic.NewClient(conf.AnthropicAPIKey),
		apiKey:  conf.AnthropicAPIKey,
		monitor: monitor,
		logger:  logger,
	}
}

func (p *Anthropic) Name() string {
	return "anthropic"
}

func (p *Anthropic) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Anthropic) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	temp := float32(temperature)
	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.ModelClaude3Dot5HaikuLatest,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
		MaxTokens:   maxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return "", p.classify(err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("anthropic returned no content")
	}

	p.monitor.InputTokens.WithLabelValues(p.Name()).Add(float64(resp.Usage.InputTokens))
	p.monitor.OutputTokens.WithLabelValues(p.Name()).Add(float64(resp.Usage.OutputTokens))
	p.logger.WithField("billing", "anthropic").Infof("Anthropic tokens: %d in, %d out", resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return resp.Content[len(resp.Content)-1].GetText(), nil
}

func (p *Anthropic) classify(err error) error {
	var e *anthropic.APIError
	if errors.As(err, &e) {
		switch e.Type {
		case "rate_limit_error", "overloaded_error":
			return fmt.Errorf("anthropic: %s: %w", e.Message, ErrQuota)
		case "authentication_error", "permission_error":
			return fmt.Errorf("anthropic: %s: %w", e.Message, ErrInvalidCredentials)
		}

		return fmt.Errorf("anthropic error, type: %s, message: %s", e.Type, e.Message)
	}

	return fmt.Errorf("anthropic client error: %w", err)
}
