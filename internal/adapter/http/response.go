package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"launchpad/internal/core/domain"
	"launchpad/internal/core/port"
)

// envelope is the wire format for every response: {success, data} on
// success, {success:false, error:{message, code}} on failure.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *wireError `json:"error,omitempty"`
}

type wireError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// projectResponse mirrors the public JSON shape of a project record.
type projectResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	TokenSymbol     string                 `json:"tokenSymbol"`
	TotalSupply     int64                  `json:"totalSupply"`
	InitialPrice    int64                  `json:"initialPrice"`
	MinContribution int64                  `json:"minContribution"`
	MaxContribution int64                  `json:"maxContribution"`
	StartTime       time.Time              `json:"startTime"`
	EndTime         time.Time              `json:"endTime"`
	OwnerAddress    string                 `json:"ownerAddress"`
	Status          string                 `json:"status"`
	Contributions   []contributionResponse `json:"contributions"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type contributionResponse struct {
	ContributorAddress string    `json:"contributorAddress"`
	Amount             int64     `json:"amount"`
	Timestamp          time.Time `json:"timestamp"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	contributions := make([]contributionResponse, len(p.Contributions))
	for i, c := range p.Contributions {
		contributions[i] = contributionResponse{
			ContributorAddress: c.ContributorAddress,
			Amount:             c.Amount,
			Timestamp:          c.Timestamp,
		}
	}
	return projectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		TokenSymbol:     p.TokenSymbol,
		TotalSupply:     p.TotalSupply,
		InitialPrice:    p.InitialPrice,
		MinContribution: p.MinContribution,
		MaxContribution: p.MaxContribution,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		OwnerAddress:    p.OwnerAddress,
		Status:          string(p.Status),
		Contributions:   contributions,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}

// writeSuccess writes the success envelope with the given status and data.
func (h *Handler) writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError writes the failure envelope with the given status and code.
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &wireError{Message: message, Code: code},
	})
	if err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeBusinessError maps a usecase error onto the wire taxonomy. Unknown
// errors are infrastructure failures: they are logged and surfaced as a
// generic 500 with the operation's fallback code and message.
func (h *Handler) writeBusinessError(w http.ResponseWriter, err error, fallbackCode, fallbackMessage string) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, domain.ErrProjectNotActive):
		h.writeError(w, http.StatusBadRequest, "PROJECT_NOT_ACTIVE", "Project is not active")
	case errors.Is(err, domain.ErrInvalidTransition):
		h.writeError(w, http.StatusBadRequest, "PROJECT_NOT_ACTIVE", err.Error())
	case errors.Is(err, domain.ErrInvalidContribution):
		h.writeError(w, http.StatusBadRequest, "INVALID_CONTRIBUTION_AMOUNT", err.Error())
	case errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, port.ErrDuplicateKey):
		h.writeError(w, http.StatusConflict, "DUPLICATE_PROJECT", err.Error())
	default:
		h.logger.Error(fallbackMessage, slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, fallbackCode, fallbackMessage)
	}
}
