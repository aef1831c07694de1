package memory

import (
	"context"
	"strings"
	"sync"

	"launchpad/internal/core/domain"
	"launchpad/internal/core/port"
)

// ProjectRepository is an in-memory implementation of port.ProjectRepository.
// It backs unit tests and local development without a database. Atomic
// updates take a per-project mutex, so operations on the same id are
// serialized while unrelated projects proceed in parallel.
type ProjectRepository struct {
	// mu guards the maps below, never a project's content.
	mu       sync.RWMutex
	projects map[string]*entry
	names    map[string]struct{}
	symbols  map[string]struct{}
}

// entry pairs a project with its update lock.
type entry struct {
	mu      sync.Mutex
	project *domain.Project
}

var _ port.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository returns an empty in-memory repository.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[string]*entry),
		names:    make(map[string]struct{}),
		symbols:  make(map[string]struct{}),
	}
}

// Create inserts a new project. Name and token symbol uniqueness is checked
// case-insensitively, matching the unique indexes of the postgres adapter.
func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	name := strings.ToLower(p.Name)
	symbol := strings.ToLower(p.TokenSymbol)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[name]; ok {
		return port.ErrDuplicateKey
	}
	if _, ok := r.symbols[symbol]; ok {
		return port.ErrDuplicateKey
	}
	if _, ok := r.projects[p.ID]; ok {
		return port.ErrDuplicateKey
	}
	r.projects[p.ID] = &entry{project: p.Clone()}
	r.names[name] = struct{}{}
	r.symbols[symbol] = struct{}{}
	return nil
}

// Get returns a copy of the project with the given id.
func (r *ProjectRepository) Get(_ context.Context, id string) (*domain.Project, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Clone(), nil
}

// ListByStatus returns copies of all projects in the given status.
func (r *ProjectRepository) ListByStatus(_ context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.projects))
	for _, e := range r.projects {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	var out []*domain.Project
	for _, e := range entries {
		e.mu.Lock()
		if e.project.Status == status {
			out = append(out, e.project.Clone())
		}
		e.mu.Unlock()
	}
	return out, nil
}

// AtomicUpdate applies fn to a working copy under the project's lock. When
// fn fails the stored record is left untouched and the error is returned
// unchanged; otherwise the copy replaces the record.
func (r *ProjectRepository) AtomicUpdate(_ context.Context, id string, fn func(*domain.Project) error) (*domain.Project, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	work := e.project.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	e.project = work
	return work.Clone(), nil
}

func (r *ProjectRepository) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.projects[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return e, nil
}
