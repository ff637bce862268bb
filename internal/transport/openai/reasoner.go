// Package openai renders recommendation reasoning through an
// OpenAI-compatible chat completion API. The scorer's structured match
// facts are the whole input; the provider only turns them into prose, so a
// provider failure degrades to the template renderer upstream.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/ttcdx/vendorlens/internal/metrics"
	recommenduc "github.com/ttcdx/vendorlens/internal/usecase/recommend"
)

const systemPrompt = "You are a vendor-selection assistant. Given a vendor's " +
	"match score and the criteria dimensions it matched, write a short, plain " +
	"recommendation rationale (2-3 sentences). Mention only the facts provided; " +
	"do not invent capabilities."

// Reasoner is a prose renderer over an OpenAI-compatible chat API.
type Reasoner struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the reasoning provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewReasoner creates an OpenAI-compatible reasoning provider.
func NewReasoner(cfg *Config) *Reasoner {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reasoner{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: provider,
		logger:   logger,
	}
}

// Reason implements the recommend.Reasoner contract.
func (r *Reasoner) Reason(ctx context.Context, rec recommenduc.Recommendation) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0.3,
		MaxTokens:   300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(rec)},
		},
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.ReasonerRequestsTotal.WithLabelValues(r.provider, "error").Inc()
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.ReasonerRequestsTotal.WithLabelValues(r.provider, "error").Inc()
		return "", fmt.Errorf("empty completion response")
	}

	metrics.ReasonerRequestsTotal.WithLabelValues(r.provider, "success").Inc()
	metrics.ReasonerRequestDuration.WithLabelValues(r.provider).Observe(duration.Seconds())

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("blank completion text")
	}

	r.logger.Debug("reasoning rendered",
		zap.String("vendor", rec.Vendor.VendorID()),
		zap.Duration("latency", duration),
	)
	return text, nil
}

// buildPrompt serializes the structured facts. Machine keys stay as-is;
// label wording is the provider's problem, not the core's.
func buildPrompt(rec recommenduc.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vendor: %s\n", rec.Vendor.Name())
	fmt.Fprintf(&b, "Match score: %d/100\n", rec.Vendor.Score())
	b.WriteString("Matched dimensions:\n")
	if len(rec.Vendor.Matches()) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, m := range rec.Vendor.Matches() {
		fmt.Fprintf(&b, "  %s: %s\n", m.Dimension(), strings.Join(m.Values(), ", "))
	}
	b.WriteString("Buyer selections:\n")
	for _, dim := range rec.Criteria.Dimensions() {
		fmt.Fprintf(&b, "  %s: %s\n", dim, strings.Join(rec.Criteria.Values(dim), ", "))
	}
	return b.String()
}

// parseAPIError extracts a readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("reasoning API error %d: %s", reqErr.HTTPStatusCode, detail)
		}
		return fmt.Errorf("reasoning API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("reasoning API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("reasoning request failed: %w", err)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
