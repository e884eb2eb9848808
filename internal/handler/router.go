package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-wellness/backend/internal/handler/chat"
	"github.com/zhouzirui/z-wellness/backend/internal/handler/knowledge"
	"github.com/zhouzirui/z-wellness/backend/internal/handler/stream"
	"github.com/zhouzirui/z-wellness/backend/internal/handler/ui"
	"github.com/zhouzirui/z-wellness/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/z-wellness/backend/internal/middleware"
	knowledgeModel "github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
	chatService "github.com/zhouzirui/z-wellness/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(kb *knowledgeModel.Base, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	ui.RegisterRoutes(r)
	chat.New(chatSvc).RegisterRoutes(r)
	ws.New(chatSvc).RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		knowledge.New(kb).RegisterRoutes(api)
		stream.New(chatSvc).RegisterRoutes(api)
	})

	return r
}
