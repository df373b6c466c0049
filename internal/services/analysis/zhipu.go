package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/httpclient"
)

const zhipuTimeout = 60 * time.Second

// ZhipuGenerator implements Generator against the Zhipu chat-completions
// endpoint. This is the secondary backend; there is no official Go SDK, so
// the client is a plain bearer-auth HTTP POST.
type ZhipuGenerator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
	logger      arbor.ILogger
}

// NewZhipuGenerator creates the chat-completion generator. The API key may
// be the Anthropic credential when no Zhipu key is configured; the original
// deployment routes such keys here.
func NewZhipuGenerator(cfg *common.ZhipuConfig, apiKey string, logger arbor.ILogger) *ZhipuGenerator {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	return &ZhipuGenerator{
		baseURL:     cfg.BaseURL,
		apiKey:      apiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		httpClient:  httpclient.NewDefaultHTTPClient(zhipuTimeout),
		logger:      logger,
	}
}

// Name returns the backend identifier used in diagnostic logs.
func (g *ZhipuGenerator) Name() string {
	return "zhipu"
}

type zhipuMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type zhipuRequest struct {
	Model       string         `json:"model"`
	Messages    []zhipuMessage `json:"messages"`
	Temperature float32        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens"`
}

type zhipuResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate runs one chat completion with the system/user prompt pair.
func (g *ZhipuGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("no Zhipu API key")
	}

	body, err := json.Marshal(zhipuRequest{
		Model: g.model,
		Messages: []zhipuMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Zhipu API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var result zhipuResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from Zhipu API")
	}

	return result.Choices[0].Message.Content, nil
}
