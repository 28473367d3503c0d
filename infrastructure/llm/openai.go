// ABOUTME: OpenAI-compatible chat completions client used as the summary provider
// ABOUTME: Sends one short summarization prompt per article through the shared HTTP client

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ai-news-api/core/domain"
	"ai-news-api/core/errors"
	"ai-news-api/core/interfaces"
)

const (
	systemPrompt = "You are a news summarizer that creates concise, engaging summaries of AI and tech news. " +
		"Keep summaries under 150 characters and focus on the most important development."

	userPromptFormat = "Summarize this AI/tech news article in 1-2 concise sentences (max 150 characters). " +
		"Focus on the key AI development or impact:\n\nTitle: %s\nContent: %s\n\nSummary:"

	maxTokens   = 100
	temperature = 0.7

	maxErrorBody = 4096
)

// OpenAIConfig configures the chat completions client
type OpenAIConfig struct {
	APIKey   string
	Model    string
	Endpoint string
}

// OpenAI implements interfaces.SummaryProvider against the chat completions API.
// Any server speaking the same wire format (Azure OpenAI, vLLM, Ollama) works.
type OpenAI struct {
	cfg        OpenAIConfig
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
}

// NewOpenAI creates a provider that posts through httpClient
func NewOpenAI(cfg OpenAIConfig, httpClient interfaces.HTTPClient, logger interfaces.Logger) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &OpenAI{cfg: cfg, httpClient: httpClient, logger: logger}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Summarize asks the model for a one or two sentence summary of article
func (p *OpenAI) Summarize(ctx context.Context, article domain.Article) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptFormat, article.Title, article.Content)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	resp, err := p.httpClient.Post(ctx, p.cfg.Endpoint, bytes.NewReader(payload), map[string]string{
		"Authorization": "Bearer " + p.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("llm/openai: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body(), maxErrorBody))
		return "", &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(body)),
			API:        "openai",
		}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body()).Decode(&decoded); err != nil {
		return "", fmt.Errorf("llm/openai: decoding response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("llm/openai: response has no choices")
	}

	fields := map[string]interface{}{"link": article.Link}
	if decoded.Usage != nil {
		fields["tokens"] = decoded.Usage.TotalTokens
	}
	p.logger.Debug("Summarized article", fields)

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
