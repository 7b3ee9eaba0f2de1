package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/08Ankit28/AI-Guru/conversation"
	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/services"
)

type stubCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	windows [][]models.Message

	// when set, Complete blocks until release is closed
	started chan struct{}
	release chan struct{}
}

func (s *stubCompleter) Complete(ctx context.Context, messages []models.Message) (string, error) {
	s.mu.Lock()
	s.windows = append(s.windows, messages)
	s.mu.Unlock()

	if s.release != nil {
		close(s.started)
		<-s.release
	}
	return s.reply, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWorkflow(c services.Completer) *ChatWorkflows {
	return NewChatWorkflows(conversation.NewStore(models.WelcomeMessage()), c, testLogger())
}

func TestSendMessageAppendsUserThenAssistant(t *testing.T) {
	wf := newWorkflow(&stubCompleter{reply: "42"})

	out, err := wf.SendMessage(context.Background(), "what is the answer?")
	require.NoError(t, err)

	msgs := wf.Conversation().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.SenderUser, msgs[1].Sender)
	assert.Equal(t, "what is the answer?", msgs[1].Text)
	assert.Equal(t, models.SenderAssistant, msgs[2].Sender)
	assert.Equal(t, "42", msgs[2].Text)

	assert.Equal(t, msgs[1], out.UserMessage)
	assert.Equal(t, msgs[2], out.AssistantMessage)
	assert.False(t, out.Offline)
}

func TestSendMessageFallsBackOnFailure(t *testing.T) {
	inputs := []string{"who created you", "hello there", "asdkjasd", "what are you"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			wf := newWorkflow(&stubCompleter{err: errors.New("connection refused")})

			out, err := wf.SendMessage(context.Background(), input)
			require.NoError(t, err)

			assert.True(t, out.Offline)
			assert.Equal(t, services.Fallback(input), out.AssistantMessage.Text)
			assert.Equal(t, 3, wf.Conversation().Len())
		})
	}
}

func TestSendMessageNotConfiguredUsesFallback(t *testing.T) {
	completer, err := services.NewOpenAICompleter(services.OpenAIConfig{})
	require.NoError(t, err)
	wf := newWorkflow(completer)

	out, err := wf.SendMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, out.Offline)
	assert.Equal(t, services.GreetingReply, out.AssistantMessage.Text)
}

func TestSendMessageRejectsBlankInput(t *testing.T) {
	stub := &stubCompleter{reply: "x"}
	wf := newWorkflow(stub)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := wf.SendMessage(context.Background(), input)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Equal(t, 1, wf.Conversation().Len())
	assert.Empty(t, stub.windows)
}

func TestSendMessageContextWindowNeverExceedsLimit(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	wf := newWorkflow(stub)

	for i := 0; i < 20; i++ {
		_, err := wf.SendMessage(context.Background(), fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	require.Len(t, stub.windows, 20)
	for _, window := range stub.windows {
		assert.LessOrEqual(t, len(window), services.ContextWindow)
	}

	// the latest user message closes every window
	last := stub.windows[len(stub.windows)-1]
	assert.Equal(t, "question 19", last[len(last)-1].Text)
	assert.Equal(t, 41, wf.Conversation().Len())
}

func TestSendMessageOneInFlight(t *testing.T) {
	stub := &stubCompleter{
		reply:   "slow reply",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	wf := newWorkflow(stub)

	done := make(chan error, 1)
	go func() {
		_, err := wf.SendMessage(context.Background(), "first")
		done <- err
	}()

	<-stub.started
	assert.True(t, wf.Busy())

	_, err := wf.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(stub.release)
	require.NoError(t, <-done)
	assert.False(t, wf.Busy())

	msgs := wf.Conversation().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[1].Text)
	assert.Equal(t, "slow reply", msgs[2].Text)
}

func TestSubmitAppendsUserMessageBeforeReply(t *testing.T) {
	stub := &stubCompleter{reply: "later"}
	wf := newWorkflow(stub)

	userMsg, err := wf.Submit("show me first")
	require.NoError(t, err)

	msgs := wf.Conversation().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, userMsg, msgs[1])
	assert.True(t, wf.Busy())
	assert.Empty(t, stub.windows)

	_, err = wf.Submit("too soon")
	assert.ErrorIs(t, err, ErrBusy)

	out, err := wf.Reply(context.Background(), userMsg)
	require.NoError(t, err)
	assert.Equal(t, userMsg, out.UserMessage)
	assert.Equal(t, "later", out.AssistantMessage.Text)
	assert.False(t, wf.Busy())
	assert.Equal(t, 3, wf.Conversation().Len())
}

func TestReplyWithoutSubmit(t *testing.T) {
	stub := &stubCompleter{reply: "x"}
	wf := newWorkflow(stub)

	_, err := wf.Reply(context.Background(), models.NewMessage(models.SenderUser, "orphan"))
	assert.ErrorIs(t, err, ErrNotSubmitted)
	assert.Equal(t, 1, wf.Conversation().Len())
	assert.Empty(t, stub.windows)
}
