package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
)

type OpenAi struct {
	client openai.Client
	apiKey string

	monitor *prometheus.Monitor
	logger  *logrus.Logger
}

func NewOpenAi(conf *config.Config, monitor *prometheus.Monitor, logger *logrus.Logger) *OpenAi {
	return &OpenAi{
		client: openai.NewClient(
			option.WithAPIKey(conf.OpenAiAPIKey),
		),
		apiKey:  conf.OpenAiAPIKey,
		monitor: monitor,
		logger:  logger,
	}
}

func (p *OpenAi) Name() string {
	return "openai"
}

func (p *OpenAi) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *OpenAi) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModelGPT3_5Turbo,
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", p.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	p.monitor.InputTokens.WithLabelValues(p.Name()).Add(float64(resp.Usage.PromptTokens))
	p.monitor.OutputTokens.WithLabelValues(p.Name()).Add(float64(resp.Usage.CompletionTokens))
	p.logger.WithField("billing", "openai").Infof("OpenAI tokens: %d in, %d out", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

// classify maps the SDK error onto the closed taxonomy. 429 covers both
// rate limits and exhausted billing quota.
func (p *OpenAi) classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("openai: %s: %w", apierr.Message, ErrQuota)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("openai: %s: %w", apierr.Message, ErrInvalidCredentials)
		}

		return fmt.Errorf("openai error, status: %d, message: %s", apierr.StatusCode, apierr.Message)
	}

	return fmt.Errorf("openai client error: %w", err)
}
