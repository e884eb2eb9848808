package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	chatHandler "github.com/zhouzirui/z-wellness/backend/internal/handler/chat"
	chatService "github.com/zhouzirui/z-wellness/backend/internal/service/chat"
)

const (
	writeTimeout = 10 * time.Second
	// maxMessageBytes bounds a single inbound frame.
	maxMessageBytes = 4 << 10
)

// Handler serves chat over a websocket; every frame is handled like POST /chat.
type Handler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Message string `json:"message"`
}

type outgoingMessage struct {
	UserMessage string `json:"user_message,omitempty"`
	BotResponse string `json:"bot_response,omitempty"`
	Intent      string `json:"intent,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chatHandler.SessionID(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "ws").Msg("upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	logger := log.With().Str("component", "ws").Str("session", sessionID).Logger()
	logger.Debug().Msg("connection opened")

	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("read failed")
			}
			return
		}

		out := h.reply(r, sessionID, in.Message)

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(out); err != nil {
			logger.Warn().Err(err).Msg("write failed")
			return
		}
	}
}

func (h *Handler) reply(r *http.Request, sessionID, message string) outgoingMessage {
	exchange, err := h.chatSvc.Reply(r.Context(), sessionID, message)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			return outgoingMessage{Error: "Empty message"}
		}
		return outgoingMessage{Error: err.Error()}
	}

	return outgoingMessage{
		UserMessage: exchange.User,
		BotResponse: exchange.Bot,
		Intent:      exchange.Intent,
	}
}
