package port

import (
	"context"
	"errors"

	"launchpad/internal/core/domain"
)

var (
	// ErrNotFound indicates the referenced project id does not exist.
	ErrNotFound = errors.New("project not found")
	// ErrDuplicateKey indicates a name or token symbol collision.
	ErrDuplicateKey = errors.New("project name or token symbol already exists")
)

// ProjectRepository is the outbound port for project storage. It is the
// registry of all projects and the sole write path for project state.
// Implementations must serialize AtomicUpdate calls on the same project id
// while letting calls on different ids proceed in parallel.
type ProjectRepository interface {
	// Create inserts a new project record. Returns ErrDuplicateKey when the
	// name or token symbol is already taken.
	Create(ctx context.Context, p *domain.Project) error

	// Get returns the project with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// ListByStatus returns all projects in the given status.
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)

	// AtomicUpdate loads the current record, applies fn and persists the
	// result as one indivisible operation. When fn returns an error the
	// update is aborted, no state is persisted and the error is returned
	// unchanged. Returns ErrNotFound when the id does not exist.
	AtomicUpdate(ctx context.Context, id string, fn func(*domain.Project) error) (*domain.Project, error)
}
