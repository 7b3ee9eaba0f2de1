package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/08Ankit28/AI-Guru/models"
)

const defaultHTTPTimeout = 120 * time.Second

// OpenAIConfig configures the OpenAICompleter
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string

	HTTPClient *http.Client
}

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint.
// Without an API key it never touches the network and every call fails
// with ErrNotConfigured.
type OpenAICompleter struct {
	llm   llms.Model
	model string
}

// NewOpenAICompleter creates a completer from the given config
func NewOpenAICompleter(cfg OpenAIConfig) (*OpenAICompleter, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if cfg.APIKey == "" {
		return &OpenAICompleter{model: model}, nil
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
		openai.WithHTTPClient(choicesDoer{client: client}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}

	return &OpenAICompleter{llm: llm, model: model}, nil
}

// Enabled reports whether an API key was configured
func (c *OpenAICompleter) Enabled() bool {
	return c.llm != nil
}

// Model returns the model name sent with each request
func (c *OpenAICompleter) Model() string {
	return c.model
}

// Complete sends the trailing window of the conversation and returns the first choice
func (c *OpenAICompleter) Complete(ctx context.Context, messages []models.Message) (string, error) {
	if c.llm == nil {
		return "", ErrNotConfigured
	}

	resp, err := c.llm.GenerateContent(ctx, BuildPrompt(messages),
		llms.WithTemperature(Temperature),
		llms.WithMaxTokens(MaxTokens),
		openai.WithLegacyMaxTokensField(),
	)
	if errors.Is(err, openai.ErrEmptyResponse) {
		return EmptyCompletionReply, nil
	}
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return EmptyCompletionReply, nil
	}
	return resp.Choices[0].Content, nil
}

// BuildPrompt converts the trailing window of messages into completion input,
// led by the system prompt.
func BuildPrompt(messages []models.Message) []llms.MessageContent {
	window := Window(messages)

	content := make([]llms.MessageContent, 0, len(window)+1)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt))
	for _, msg := range window {
		role := llms.ChatMessageTypeAI
		if msg.Sender.Role() == "user" {
			role = llms.ChatMessageTypeHuman
		}
		content = append(content, llms.TextParts(role, msg.Text))
	}
	return content
}

// emptyChoice stands in for a response that carried no choices.
const emptyChoice = `{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"stop"}]}`

// choicesDoer rewrites a successful response with no choices into one with a
// single empty choice. The client library treats a missing choice as an
// error; an empty one reaches Complete and becomes EmptyCompletionReply.
type choicesDoer struct {
	client *http.Client
}

func (d choicesDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if gjson.ValidBytes(body) {
		choices := gjson.GetBytes(body, "choices")
		if !choices.Exists() || (choices.IsArray() && len(choices.Array()) == 0) {
			body = []byte(emptyChoice)
		}
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.Header.Del("Content-Length")
	return resp, nil
}
