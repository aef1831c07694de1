package port

import (
	"context"

	"launchpad/internal/core/domain"
)

// ProjectUseCase defines the business operations of the lifecycle and
// contribution engine. This is the primary inbound port; the HTTP adapter
// talks to the application only through it.
type ProjectUseCase interface {
	// CreateProject validates input and registers a new pending project.
	// Fails with a domain.ErrValidation wrap on malformed parameters and
	// ErrDuplicateKey on a name or token symbol collision.
	CreateProject(ctx context.Context, in domain.CreateProjectInput) (*domain.Project, error)

	// GetProject returns a project by id, or ErrNotFound.
	GetProject(ctx context.Context, id string) (*domain.Project, error)

	// ListActive returns all currently active projects.
	ListActive(ctx context.Context) ([]*domain.Project, error)

	// Contribute records a contribution against an active project. The
	// status and bounds checks run atomically with the append, so every
	// accepted contribution respected the record in effect at its
	// serialization point.
	Contribute(ctx context.Context, id, contributorAddress string, amount int64) (*domain.Project, error)

	// ActivateProject moves a pending project to active.
	ActivateProject(ctx context.Context, id string) (*domain.Project, error)

	// EndProject moves an active project to ended. Fails with
	// domain.ErrProjectNotActive in any other status.
	EndProject(ctx context.Context, id string) (*domain.Project, error)

	// CancelProject moves a pending or active project to cancelled.
	CancelProject(ctx context.Context, id string) (*domain.Project, error)
}
