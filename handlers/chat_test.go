package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/08Ankit28/AI-Guru/handlers"
	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	panicMsg string
	received [][]models.Message
}

func (s *stubCompleter) Complete(ctx context.Context, messages []models.Message) (string, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.mu.Lock()
	s.received = append(s.received, messages)
	s.mu.Unlock()
	return s.reply, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(c services.Completer) *gin.Engine {
	return handlers.NewRouter(c, true, testLogger())
}

func postChat(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validBody = `{"messages":[
	{"id":"welcome","text":"Hello! I'm AI Guru.","sender":"ai","timestamp":"2024-05-01T10:00:00.000Z"},
	{"id":"1714557601000","text":"What is Go?","sender":"user","timestamp":"2024-05-01T10:00:01.000Z"}
]}`

func TestChatReturnsCompletion(t *testing.T) {
	stub := &stubCompleter{reply: "Go is a programming language."}
	w := postChat(t, newTestRouter(stub), validBody)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Go is a programming language.", resp.Response)

	require.Len(t, stub.received, 1)
	msgs := stub.received[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderAssistant, msgs[0].Sender)
	assert.Equal(t, "What is Go?", msgs[1].Text)
}

func TestChatCompletionFailureIsApology(t *testing.T) {
	stub := &stubCompleter{err: services.ErrNotConfigured}
	w := postChat(t, newTestRouter(stub), validBody)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "I apologize, but I encountered an error")
}

func TestChatRejectsMalformedRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "hello"},
		{"missing messages", `{}`},
		{"null messages", `{"messages":null}`},
		{"messages not array", `{"messages":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{reply: "unused"}
			w := postChat(t, newTestRouter(stub), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid request. 'messages' array is required."}`, w.Body.String())
			assert.Empty(t, stub.received)
		})
	}
}

func TestChatEmptyArrayIsAccepted(t *testing.T) {
	stub := &stubCompleter{reply: "hi"}
	w := postChat(t, newTestRouter(stub), `{"messages":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatNonStringSenderIsAssistant(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	body := `{"messages":[
		{"id":"1","text":"earlier reply","sender":42,"timestamp":"2024-05-01T10:00:00.000Z"},
		{"id":"2","text":"What is Go?","sender":"user","timestamp":"2024-05-01T10:00:01.000Z"}
	]}`
	w := postChat(t, newTestRouter(stub), body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, stub.received, 1)
	assert.Equal(t, models.SenderAssistant, stub.received[0][0].Sender)
	assert.Equal(t, models.SenderUser, stub.received[0][1].Sender)
}

func TestChatPanicIsInternalError(t *testing.T) {
	stub := &stubCompleter{panicMsg: "boom"}
	w := postChat(t, newTestRouter(stub), validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to process the request"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		enabled bool
		want    string
	}{
		{true, "enabled"},
		{false, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			router := handlers.NewRouter(&stubCompleter{}, tt.enabled, testLogger())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"status":"healthy","completion":"`+tt.want+`"}`, w.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(&stubCompleter{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/chat", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRemoteCompleterAgainstRouter(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&stubCompleter{reply: "served"}))
	defer srv.Close()

	remote := services.NewRemoteCompleter(srv.URL, srv.Client())
	reply, err := remote.Complete(context.Background(), []models.Message{
		models.NewMessage(models.SenderUser, "ping"),
	})
	require.NoError(t, err)
	assert.Equal(t, "served", reply)
}

func TestRemoteCompleterSeesServerApologyAsSuccess(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(&stubCompleter{err: errors.New("upstream down")}))
	defer srv.Close()

	remote := services.NewRemoteCompleter(srv.URL, srv.Client())
	reply, err := remote.Complete(context.Background(), []models.Message{
		models.NewMessage(models.SenderUser, "ping"),
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "I apologize")
}
