package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/08Ankit28/AI-Guru/models"
)

const chatPath = "/api/chat"

// RemoteCompleter talks to a running AI Guru server over POST /api/chat
type RemoteCompleter struct {
	baseURL string
	client  *http.Client
}

// NewRemoteCompleter creates a completer for the server at baseURL
func NewRemoteCompleter(baseURL string, client *http.Client) *RemoteCompleter {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout + 10*time.Second}
	}
	return &RemoteCompleter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Complete posts the trailing window of the conversation and returns the server's reply
func (s *RemoteCompleter) Complete(ctx context.Context, messages []models.Message) (string, error) {
	jsonBody, err := json.Marshal(models.ChatRequest{Messages: Window(messages)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := s.baseURL + chatPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   url,
			Message:    gjson.GetBytes(body, "error").String(),
		}
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: body is not JSON", ErrInvalidResponse)
	}
	result := gjson.GetBytes(body, "response")
	if !result.Exists() {
		return "", fmt.Errorf("%w: missing response field", ErrInvalidResponse)
	}
	return result.String(), nil
}
