package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"launchpad/internal/core/domain"
)

// createProjectRequest is the POST / body. Timestamps are RFC3339.
type createProjectRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	TokenSymbol     string    `json:"tokenSymbol"`
	TotalSupply     int64     `json:"totalSupply"`
	InitialPrice    int64     `json:"initialPrice"`
	MinContribution int64     `json:"minContribution"`
	MaxContribution int64     `json:"maxContribution"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	OwnerAddress    string    `json:"ownerAddress"`
}

// contributeRequest is the POST /{id}/contribute body.
type contributeRequest struct {
	ContributorAddress string `json:"contributorAddress"`
	Amount             int64  `json:"amount"`
}

// handleListProjects returns all active projects.
func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.ListActive(r.Context())
	if err != nil {
		h.writeBusinessError(w, err, "FETCH_PROJECTS_ERROR", "Failed to fetch projects")
		return
	}
	h.writeSuccess(w, http.StatusOK, toProjectResponses(projects))
}

// handleGetProject returns a single project by id.
func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeBusinessError(w, err, "FETCH_PROJECT_ERROR", "Failed to fetch project")
		return
	}
	h.writeSuccess(w, http.StatusOK, toProjectResponse(project))
}

// handleCreateProject registers a new pending project. Parameter
// validation happens in the domain layer; malformed JSON is rejected here.
func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body")
		return
	}
	project, err := h.svc.CreateProject(r.Context(), domain.CreateProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		TokenSymbol:     req.TokenSymbol,
		TotalSupply:     req.TotalSupply,
		InitialPrice:    req.InitialPrice,
		MinContribution: req.MinContribution,
		MaxContribution: req.MaxContribution,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		OwnerAddress:    req.OwnerAddress,
	})
	if err != nil {
		h.writeBusinessError(w, err, "CREATE_PROJECT_ERROR", "Failed to create project")
		return
	}
	h.writeSuccess(w, http.StatusCreated, toProjectResponse(project))
}

// handleContribute records a contribution against an active project.
func (h *Handler) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body")
		return
	}
	project, err := h.svc.Contribute(r.Context(), chi.URLParam(r, "id"), req.ContributorAddress, req.Amount)
	if err != nil {
		h.writeBusinessError(w, err, "CONTRIBUTE_ERROR", "Failed to contribute to project")
		return
	}
	h.writeSuccess(w, http.StatusOK, toProjectResponse(project))
}

// handleActivateProject moves a pending project to active.
func (h *Handler) handleActivateProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.ActivateProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeBusinessError(w, err, "ACTIVATE_PROJECT_ERROR", "Failed to activate project")
		return
	}
	h.writeSuccess(w, http.StatusOK, toProjectResponse(project))
}

// handleEndProject moves an active project to ended.
func (h *Handler) handleEndProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.EndProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeBusinessError(w, err, "END_PROJECT_ERROR", "Failed to end project")
		return
	}
	h.writeSuccess(w, http.StatusOK, toProjectResponse(project))
}

// handleCancelProject moves a pending or active project to cancelled.
func (h *Handler) handleCancelProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.CancelProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeBusinessError(w, err, "CANCEL_PROJECT_ERROR", "Failed to cancel project")
		return
	}
	h.writeSuccess(w, http.StatusOK, toProjectResponse(project))
}
