package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yasyhadav121/codecrack/internal/config"
	apperrors "github.com/yasyhadav121/codecrack/pkg/errors"
)

// Chat client for an OpenAI-compatible chat completions API. The tutoring
// prompt is assembled by the handler; this layer only speaks the wire format.

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var aiHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Chat sends a conversation to the configured provider and returns the
// assistant's reply.
func Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	cfg := config.AppConfig

	body, err := json.Marshal(chatRequest{
		Model:       cfg.AIModel,
		Messages:    messages,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", cfg.AIBaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.AIAPIKey)

	resp, err := aiHTTPClient.Do(httpReq)
	if err != nil {
		return "", apperrors.Upstream("The AI assistant", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", apperrors.Upstream("The AI assistant",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI provider returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
