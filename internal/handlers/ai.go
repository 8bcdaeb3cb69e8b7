package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yasyhadav121/codecrack/internal/services"
	apperrors "github.com/yasyhadav121/codecrack/pkg/errors"
	"github.com/yasyhadav121/codecrack/pkg/logger"
)

// The transcript arrives in the front end's {role, parts[].text} shape.
type chatTurn struct {
	Role  string `json:"role"`
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type ChatInput struct {
	Messages    []chatTurn  `json:"messages" binding:"required,min=1"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TestCases   interface{} `json:"testCases"`
	StartCode   interface{} `json:"startCode"`
}

func buildTutorPrompt(input *ChatInput) string {
	var b strings.Builder
	b.WriteString("You are a tutoring assistant on a competitive programming platform. ")
	b.WriteString("Help the user understand the problem and guide them toward a solution ")
	b.WriteString("with hints and explanations; do not hand over a full solution unless asked.\n\n")
	if input.Title != "" {
		fmt.Fprintf(&b, "Problem: %s\n", input.Title)
	}
	if input.Description != "" {
		fmt.Fprintf(&b, "Description:\n%s\n", input.Description)
	}
	if input.TestCases != nil {
		fmt.Fprintf(&b, "Example test cases: %v\n", input.TestCases)
	}
	return b.String()
}

// Chat handles POST /ai/chat: wraps the problem context into a system
// prompt and relays the conversation to the AI provider.
func Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	messages := make([]services.ChatMessage, 0, len(input.Messages)+1)
	messages = append(messages, services.ChatMessage{
		Role:    "system",
		Content: buildTutorPrompt(&input),
	})

	for _, turn := range input.Messages {
		if len(turn.Parts) == 0 {
			continue
		}
		role := "user"
		if turn.Role == "model" || turn.Role == "assistant" {
			role = "assistant"
		}
		messages = append(messages, services.ChatMessage{
			Role:    role,
			Content: turn.Parts[0].Text,
		})
	}

	reply, err := services.Chat(c.Request.Context(), messages)
	if err != nil {
		logger.Error().Err(err).Msg("AI chat failed")
		if appErr, ok := apperrors.AsAppError(err); ok {
			c.JSON(appErr.Status, gin.H{"message": appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "AI assistant is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}
