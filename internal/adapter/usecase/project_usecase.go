package usecase

import (
	"context"
	"fmt"
	"time"

	"launchpad/internal/core/domain"
	"launchpad/internal/core/port"
)

// ProjectUseCase implements the lifecycle and contribution engine on top of
// a ProjectRepository. Every mutating operation runs inside a single
// AtomicUpdate so validation and mutation cannot interleave with concurrent
// requests against the same project.
type ProjectUseCase struct {
	repo port.ProjectRepository

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

var _ port.ProjectUseCase = (*ProjectUseCase)(nil)

// NewProjectUseCase creates a new engine with the provided repository.
func NewProjectUseCase(repo port.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, now: time.Now}
}

// CreateProject validates input and registers a new pending project.
func (u *ProjectUseCase) CreateProject(ctx context.Context, in domain.CreateProjectInput) (*domain.Project, error) {
	p, err := domain.NewProject(in, u.now)
	if err != nil {
		return nil, err
	}
	if err = u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// GetProject returns a project by id.
func (u *ProjectUseCase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return u.repo.Get(ctx, id)
}

// ListActive returns all currently active projects.
func (u *ProjectUseCase) ListActive(ctx context.Context) ([]*domain.Project, error) {
	return u.repo.ListByStatus(ctx, domain.StatusActive)
}

// Contribute records a contribution against an active project. The status
// and bounds checks run against the freshly loaded record inside the atomic
// update, never against a stale read.
func (u *ProjectUseCase) Contribute(ctx context.Context, id, contributorAddress string, amount int64) (*domain.Project, error) {
	if !domain.IsAddress(contributorAddress) {
		return nil, fmt.Errorf("%w: contributor address is not a valid address", domain.ErrValidation)
	}
	return u.repo.AtomicUpdate(ctx, id, func(p *domain.Project) error {
		return p.Contribute(contributorAddress, amount, u.now())
	})
}

// ActivateProject moves a pending project to active.
func (u *ProjectUseCase) ActivateProject(ctx context.Context, id string) (*domain.Project, error) {
	return u.transition(ctx, id, domain.StatusActive)
}

// EndProject moves an active project to ended.
func (u *ProjectUseCase) EndProject(ctx context.Context, id string) (*domain.Project, error) {
	return u.transition(ctx, id, domain.StatusEnded)
}

// CancelProject moves a pending or active project to cancelled.
func (u *ProjectUseCase) CancelProject(ctx context.Context, id string) (*domain.Project, error) {
	return u.transition(ctx, id, domain.StatusCancelled)
}

func (u *ProjectUseCase) transition(ctx context.Context, id string, target domain.ProjectStatus) (*domain.Project, error) {
	return u.repo.AtomicUpdate(ctx, id, func(p *domain.Project) error {
		return p.Transition(target, u.now())
	})
}
