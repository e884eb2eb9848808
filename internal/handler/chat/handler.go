package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zhouzirui/z-wellness/backend/internal/model/chat"
	chatService "github.com/zhouzirui/z-wellness/backend/internal/service/chat"
	"github.com/zhouzirui/z-wellness/backend/pkg/utils"
)

// SessionHeader carries an optional session id selecting the history buffer.
const SessionHeader = "X-Session-ID"

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc  *chatService.Service
	validate *validator.Validate
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		validate: validator.New(),
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/history", h.handleHistory)
	r.Post("/session", h.handleCreateSession)
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	UserMessage string `json:"user_message"`
	BotResponse string `json:"bot_response"`
}

type historyResponse struct {
	History []chat.Exchange `json:"history"`
}

// handleChat 处理一条用户消息
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Message = strings.TrimSpace(payload.Message)
	if err := h.validate.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Empty message")
		return
	}

	exchange, err := h.chatSvc.Reply(r.Context(), SessionID(r), payload.Message)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "Empty message")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{
		UserMessage: exchange.User,
		BotResponse: exchange.Bot,
	})
}

// handleHistory 返回最近的对话
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, historyResponse{
		History: h.chatSvc.History(r.Context(), SessionID(r)),
	})
}

// handleCreateSession 创建会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusCreated, h.chatSvc.CreateSession(r.Context()))
}

// SessionID reads the session from the X-Session-ID header or the session_id query parameter.
func SessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("session_id"))
}
