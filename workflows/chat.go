package workflows

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/08Ankit28/AI-Guru/conversation"
	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/services"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is already in progress")
	ErrNotSubmitted = errors.New("no message is awaiting a reply")
)

// ChatWorkflows runs the submit flow for a single conversation
type ChatWorkflows struct {
	store     *conversation.Store
	completer services.Completer
	logger    *slog.Logger

	inFlight atomic.Bool
}

// NewChatWorkflows creates a new ChatWorkflows instance
func NewChatWorkflows(store *conversation.Store, completer services.Completer, logger *slog.Logger) *ChatWorkflows {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatWorkflows{
		store:     store,
		completer: completer,
		logger:    logger,
	}
}

// Conversation returns the store the workflow appends to
func (w *ChatWorkflows) Conversation() *conversation.Store {
	return w.store
}

// Busy reports whether a completion is in flight
func (w *ChatWorkflows) Busy() bool {
	return w.inFlight.Load()
}

// SendMessage appends the user's text, asks the completer for a reply and
// appends that reply. When the completer fails the reply comes from
// services.Fallback and the exchange is marked offline. Only one call may
// be in flight per conversation; a concurrent call gets ErrBusy and
// changes nothing.
func (w *ChatWorkflows) SendMessage(ctx context.Context, text string) (models.Exchange, error) {
	userMsg, err := w.Submit(text)
	if err != nil {
		return models.Exchange{}, err
	}
	return w.Reply(ctx, userMsg)
}

// Submit validates text, claims the conversation and appends the user
// message. The caller must follow up with Reply, which releases the claim.
// Splitting the two lets a widget show the user's message before the
// completion returns.
func (w *ChatWorkflows) Submit(text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyMessage
	}
	if !w.inFlight.CompareAndSwap(false, true) {
		return models.Message{}, ErrBusy
	}

	// Step 1: save user message
	userMsg := models.NewMessage(models.SenderUser, text)
	w.store.Append(userMsg)
	return userMsg, nil
}

// Reply completes the exchange opened by Submit for userMsg.
func (w *ChatWorkflows) Reply(ctx context.Context, userMsg models.Message) (models.Exchange, error) {
	if !w.inFlight.Load() {
		return models.Exchange{}, ErrNotSubmitted
	}
	defer w.inFlight.Store(false)

	output := models.Exchange{UserMessage: userMsg}

	// Step 2: trailing window, user message included
	window := w.store.Tail(services.ContextWindow)

	// Step 3: get AI response, or a canned one if that fails
	reply, err := w.completer.Complete(ctx, window)
	if err != nil {
		w.logger.Warn("completion failed, using fallback reply", "error", err, "context_messages", len(window))
		reply = services.Fallback(userMsg.Text)
		output.Offline = true
	}

	// Step 4: save assistant message
	assistantMsg := models.NewMessage(models.SenderAssistant, reply)
	w.store.Append(assistantMsg)
	output.AssistantMessage = assistantMsg

	w.logger.Debug("exchange complete",
		"user_message_id", userMsg.ID,
		"assistant_message_id", assistantMsg.ID,
		"offline", output.Offline,
	)
	return output, nil
}
