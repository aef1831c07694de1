package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"launchpad/internal/core/port"
)

// Handler contains dependencies and routes. It is the inbound HTTP adapter:
// it decodes requests, delegates to the ProjectUseCase and writes the
// response envelope. Routes are registered on a chi.Router.
type Handler struct {
	svc    port.ProjectUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all project routes configured. Listing
// and creation live at the root, per-project operations under /{id}.
func NewHandler(svc port.ProjectUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Get("/", h.handleListProjects)
	r.Post("/", h.handleCreateProject)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.handleGetProject)
		r.Post("/contribute", h.handleContribute)
		r.Post("/activate", h.handleActivateProject)
		r.Post("/end", h.handleEndProject)
		r.Post("/cancel", h.handleCancelProject)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
