// Package llm talks to an OpenAI-compatible chat completions endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bgunnarsson/askcourses/internal/prompt"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// ErrEmptyResponse is returned when the service answers without usable text.
var ErrEmptyResponse = errors.New("model returned no content")

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration // 0 means no client-side timeout
}

type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required (set OPENAI_API_KEY)")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Generate sends conv in one non-streaming request and returns the first
// choice's text, trimmed. Sampling is left at the service defaults.
func (c *Client) Generate(ctx context.Context, conv prompt.Conversation) (string, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: make([]chatMessage, 0, len(conv)),
	}
	for _, turn := range conv {
		payload.Messages = append(payload.Messages, chatMessage{Role: string(turn.Role), Content: turn.Text})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("chat completion failed: status %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("chat completion failed: status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == nil {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(*result.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
