package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Sender tags who wrote a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// UnmarshalJSON accepts the legacy "ai" tag used by older widgets.
// A sender that is not a string is read as the assistant.
func (s *Sender) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	raw, ok := v.(string)
	if !ok || raw == "ai" {
		raw = string(SenderAssistant)
	}
	*s = Sender(raw)
	return nil
}

// Role returns the completion-API role for the sender.
// Anything that is not the user is treated as the assistant.
func (s Sender) Role() string {
	if s == SenderUser {
		return "user"
	}
	return "assistant"
}

// WelcomeID is the fixed id of the greeting a new conversation starts with
const WelcomeID = "welcome"

const welcomeText = "Hello! I'm AI Guru. How can I help you today?"

// Message represents a message in a conversation
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a fresh id stamped with the current time
func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
}

// WelcomeMessage returns the assistant greeting shown at the top of a conversation
func WelcomeMessage() Message {
	return Message{
		ID:        WelcomeID,
		Text:      welcomeText,
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
	}
}

// ChatRequest is the request body for POST /api/chat
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// ChatResponse is the success body for POST /api/chat
type ChatResponse struct {
	Response string `json:"response"`
}

// SocketRequest is a single frame sent by a websocket chat client
type SocketRequest struct {
	Text string `json:"text"`
}

// Exchange is one completed round trip: the user's message and the reply to it
type Exchange struct {
	UserMessage      Message `json:"user_message"`
	AssistantMessage Message `json:"assistant_message"`
	Offline          bool    `json:"offline"`
}
