package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/08Ankit28/AI-Guru/conversation"
	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/services"
	"github.com/08Ankit28/AI-Guru/workflows"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // widget may be served from anywhere
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SocketHandler serves the websocket chat. Each connection owns one
// conversation, which is dropped when the socket closes.
type SocketHandler struct {
	completer services.Completer
	logger    *slog.Logger
}

// NewSocketHandler creates a new websocket chat handler
func NewSocketHandler(completer services.Completer, logger *slog.Logger) *SocketHandler {
	return &SocketHandler{
		completer: completer,
		logger:    logger,
	}
}

// Serve upgrades the request and runs the read loop until the client leaves
func (h *SocketHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	log := h.logger.With("remote_addr", c.Request.RemoteAddr)
	log.Info("chat socket opened")

	store := conversation.NewStore(models.WelcomeMessage())
	wf := workflows.NewChatWorkflows(store, h.completer, log)
	ctx := c.Request.Context()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("chat socket closed unexpectedly", "error", err)
			}
			log.Info("chat socket closed", "messages", store.Len())
			return
		}

		var req models.SocketRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if err := conn.WriteJSON(gin.H{"error": "Invalid frame. Expected {\"text\": \"...\"}."}); err != nil {
				return
			}
			continue
		}

		out, err := wf.SendMessage(ctx, req.Text)
		if err != nil {
			msg := "Failed to process the message"
			if errors.Is(err, workflows.ErrEmptyMessage) || errors.Is(err, workflows.ErrBusy) {
				msg = err.Error()
			}
			if err := conn.WriteJSON(gin.H{"error": msg}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(out); err != nil {
			log.Warn("failed to write reply", "error", err)
			return
		}
	}
}
