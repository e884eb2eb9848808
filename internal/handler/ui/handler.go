package ui

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static/index.html
var indexPage []byte

// RegisterRoutes serves the chat page.
func RegisterRoutes(r chi.Router) {
	r.Get("/", handleIndex)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}
