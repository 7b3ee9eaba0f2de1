package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/08Ankit28/AI-Guru/models"
)

const (
	// ContextWindow is how many trailing messages are sent as completion context
	ContextWindow = 10

	DefaultModel = "gpt-3.5-turbo"
	Temperature  = 0.7
	MaxTokens    = 500

	// SystemPrompt sets the assistant's persona for every completion
	SystemPrompt = "You are AI Guru, a helpful, friendly, and knowledgeable assistant. " +
		"Answer questions concisely and accurately. " +
		"If asked about who created you, say you were created by Ankit, Priyanshu & Abhishek."

	// EmptyCompletionReply is returned when the model answers with no text
	EmptyCompletionReply = "Sorry, I couldn't generate a response."
)

var (
	// ErrNotConfigured means no API key is set, so no remote call is attempted
	ErrNotConfigured = errors.New("completion service not configured")

	ErrInvalidResponse = errors.New("invalid response format")
)

// Completer turns a conversation into the next assistant reply
type Completer interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// APIError is a non-2xx answer from a completion endpoint
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error [%d] at %s", e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Window returns the trailing ContextWindow messages
func Window(messages []models.Message) []models.Message {
	if len(messages) <= ContextWindow {
		return messages
	}
	return messages[len(messages)-ContextWindow:]
}
