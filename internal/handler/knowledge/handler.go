package knowledge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
	"github.com/zhouzirui/z-wellness/backend/pkg/utils"
)

// Handler exposes the read-only knowledge base.
type Handler struct {
	kb *knowledge.Base
}

// New 创建知识库处理器
func New(kb *knowledge.Base) *Handler {
	return &Handler{kb: kb}
}

// RegisterRoutes 注册知识库相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/plans", h.handleListPlans)
	r.Get("/tips", h.handleListTips)
}

type planView struct {
	Name  string     `json:"name"`
	Meals []mealView `json:"meals"`
}

type mealView struct {
	Slot knowledge.Slot `json:"slot"`
	Text string         `json:"text"`
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans := h.kb.Plans()
	views := make([]planView, 0, len(plans))
	for _, plan := range plans {
		meals := make([]mealView, 0, len(knowledge.Slots))
		for _, slot := range knowledge.Slots {
			meals = append(meals, mealView{Slot: slot, Text: plan.Meal(slot)})
		}
		views = append(views, planView{Name: plan.Name, Meals: meals})
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"plans": views})
}

func (h *Handler) handleListTips(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[knowledge.Category][]string{
		knowledge.Dos:      h.kb.Entries(knowledge.Dos),
		knowledge.Donts:    h.kb.Entries(knowledge.Donts),
		knowledge.DietTips: h.kb.Entries(knowledge.DietTips),
	})
}
