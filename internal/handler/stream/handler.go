package stream

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	chatHandler "github.com/zhouzirui/z-wellness/backend/internal/handler/chat"
	chatService "github.com/zhouzirui/z-wellness/backend/internal/service/chat"
	"github.com/zhouzirui/z-wellness/backend/pkg/utils"
)

// Handler streams replies line by line via Server-Sent Events
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a new stream handler
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes registers the streaming endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream", h.handleStream)
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content,omitempty"`
	Intent    string `json:"intent,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// handleStream answers ?message= as an event stream. The GET is not read-only: like POST /chat it
// appends the exchange to the caller's history, since EventSource clients can only issue GETs.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sessionID := chatHandler.SessionID(r)
	exchange, err := h.chatSvc.Reply(r.Context(), sessionID, r.URL.Query().Get("message"))
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "Empty message")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	utils.SendSSEEvent(w, flusher, "start", StreamResponse{SessionID: exchange.SessionID, Intent: exchange.Intent})

	for _, line := range strings.Split(exchange.Bot, "\n") {
		select {
		case <-r.Context().Done():
			log.Debug().Str("component", "stream").Str("session", exchange.SessionID).Msg("client went away")
			return
		default:
		}
		utils.SendSSEEvent(w, flusher, "delta", StreamResponse{SessionID: exchange.SessionID, Content: line})
	}

	utils.SendSSEEvent(w, flusher, "message", StreamResponse{
		SessionID: exchange.SessionID,
		Content:   exchange.Bot,
		Intent:    exchange.Intent,
	})
	utils.SendSSEEvent(w, flusher, "end", StreamResponse{SessionID: exchange.SessionID, Finished: true})

	log.Debug().Str("component", "stream").Str("session", exchange.SessionID).Msg("completed response")
}
