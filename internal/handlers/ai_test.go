package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yasyhadav121/codecrack/internal/config"
)

func fakeAIProvider(t *testing.T, reply string, capture *[]map[string]interface{}) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-ai-key", r.Header.Get("Authorization"))

		var req struct {
			Messages []map[string]interface{} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if capture != nil {
			*capture = req.Messages
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(server.Close)

	config.AppConfig.AIBaseURL = server.URL
	config.AppConfig.AIAPIKey = "test-ai-key"
	config.AppConfig.AIModel = "test-model"
}

func TestChat_RelaysConversation(t *testing.T) {
	SetupTestDB(t)
	var captured []map[string]interface{}
	fakeAIProvider(t, "Think about what data structure gives O(1) lookups.", &captured)

	c, w := newTestContext(t, "POST", "/ai/chat", map[string]interface{}{
		"title":       "Two Sum",
		"description": "Find indices of two numbers adding to target.",
		"messages": []map[string]interface{}{
			{"role": "user", "parts": []map[string]string{{"text": "How should I start?"}}},
			{"role": "model", "parts": []map[string]string{{"text": "What have you tried?"}}},
			{"role": "user", "parts": []map[string]string{{"text": "Brute force is too slow."}}},
		},
	})
	Chat(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Think about what data structure gives O(1) lookups.", resp["message"])

	// System prompt first, then the transcript with "model" mapped to
	// "assistant".
	if assert.Len(t, captured, 4) {
		assert.Equal(t, "system", captured[0]["role"])
		assert.Contains(t, captured[0]["content"], "Two Sum")
		assert.Equal(t, "user", captured[1]["role"])
		assert.Equal(t, "assistant", captured[2]["role"])
		assert.Equal(t, "What have you tried?", captured[2]["content"])
	}
}

func TestChat_RequiresMessages(t *testing.T) {
	SetupTestDB(t)

	c, w := newTestContext(t, "POST", "/ai/chat", map[string]interface{}{
		"messages": []interface{}{},
	})
	Chat(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_ProviderFailure(t *testing.T) {
	SetupTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)
	config.AppConfig.AIBaseURL = server.URL

	c, w := newTestContext(t, "POST", "/ai/chat", map[string]interface{}{
		"messages": []map[string]interface{}{
			{"role": "user", "parts": []map[string]string{{"text": "Help"}}},
		},
	})
	Chat(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestBuildTutorPrompt(t *testing.T) {
	prompt := buildTutorPrompt(&ChatInput{
		Title:       "Two Sum",
		Description: "Find indices.",
	})
	assert.Contains(t, prompt, "Two Sum")
	assert.Contains(t, prompt, "Find indices.")
	assert.Contains(t, prompt, "do not hand over a full solution")
}
