package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus describes the lifecycle state of a launchpad project.
type ProjectStatus string

const (
	StatusPending   ProjectStatus = "pending"
	StatusActive    ProjectStatus = "active"
	StatusEnded     ProjectStatus = "ended"
	StatusCancelled ProjectStatus = "cancelled"
)

var (
	// ErrProjectNotActive indicates an operation that requires an active
	// project was attempted in another state.
	ErrProjectNotActive = errors.New("project is not active")
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = errors.New("status transition is not allowed")
	// ErrInvalidContribution indicates a contribution amount outside the
	// project's configured bounds.
	ErrInvalidContribution = errors.New("invalid contribution amount")
	// ErrValidation indicates malformed or out-of-range project parameters.
	ErrValidation = errors.New("validation failed")
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusEnded, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s ProjectStatus) Terminal() bool {
	return s == StatusEnded || s == StatusCancelled
}

// canTransition is the status transition table. Every lifecycle operation
// consults this table; legality is never re-derived per call site.
func canTransition(from, to ProjectStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusActive || to == StatusCancelled
	case StatusActive:
		return to == StatusEnded || to == StatusCancelled
	default:
		return false
	}
}

// Contribution is one accepted pledge against a project. Records are
// append-only: once accepted they are never edited or removed.
type Contribution struct {
	ContributorAddress string
	Amount             int64
	Timestamp          time.Time
}

// Project represents a time-bounded fundraising campaign. Monetary fields
// are stored in integer base units. Name and TokenSymbol are unique across
// all projects; uniqueness is enforced by the repository at creation.
type Project struct {
	ID              string
	Name            string
	Description     string
	TokenSymbol     string
	TotalSupply     int64
	InitialPrice    int64
	MinContribution int64
	MaxContribution int64
	StartTime       time.Time
	EndTime         time.Time
	OwnerAddress    string
	Status          ProjectStatus
	Contributions   []Contribution
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateProjectInput holds the caller-supplied parameters for a new project.
type CreateProjectInput struct {
	Name            string
	Description     string
	TokenSymbol     string
	TotalSupply     int64
	InitialPrice    int64
	MinContribution int64
	MaxContribution int64
	StartTime       time.Time
	EndTime         time.Time
	OwnerAddress    string
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress reports whether s is a well-formed 0x-prefixed hex address.
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// NewProject validates input and constructs a pending project with a
// generated id and bookkeeping timestamps. It returns an error wrapping
// ErrValidation when any parameter is malformed or out of range.
func NewProject(in CreateProjectInput, now func() time.Time) (*Project, error) {
	if now == nil {
		now = time.Now
	}
	in.Name = strings.TrimSpace(in.Name)
	in.TokenSymbol = strings.TrimSpace(in.TokenSymbol)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case in.Description == "":
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	case in.TokenSymbol == "":
		return nil, fmt.Errorf("%w: token symbol is required", ErrValidation)
	case in.TotalSupply < 0:
		return nil, fmt.Errorf("%w: total supply must be non-negative", ErrValidation)
	case in.InitialPrice < 0:
		return nil, fmt.Errorf("%w: initial price must be non-negative", ErrValidation)
	case in.MinContribution < 0:
		return nil, fmt.Errorf("%w: min contribution must be non-negative", ErrValidation)
	case in.MaxContribution < 0:
		return nil, fmt.Errorf("%w: max contribution must be non-negative", ErrValidation)
	case in.MinContribution > in.MaxContribution:
		return nil, fmt.Errorf("%w: min contribution cannot exceed max contribution", ErrValidation)
	case in.StartTime.IsZero() || in.EndTime.IsZero():
		return nil, fmt.Errorf("%w: start time and end time are required", ErrValidation)
	case !in.StartTime.Before(in.EndTime):
		return nil, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	case !IsAddress(in.OwnerAddress):
		return nil, fmt.Errorf("%w: owner address is not a valid address", ErrValidation)
	}

	createdAt := now().UTC()
	return &Project{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		TokenSymbol:     in.TokenSymbol,
		TotalSupply:     in.TotalSupply,
		InitialPrice:    in.InitialPrice,
		MinContribution: in.MinContribution,
		MaxContribution: in.MaxContribution,
		StartTime:       in.StartTime.UTC(),
		EndTime:         in.EndTime.UTC(),
		OwnerAddress:    in.OwnerAddress,
		Status:          StatusPending,
		Contributions:   []Contribution{},
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}, nil
}

// Contribute validates and appends a contribution. The project must be
// active and the amount must lie within the current bounds. Both checks and
// the append must run inside the same atomic repository update; callers
// never contribute against a stale read.
func (p *Project) Contribute(contributorAddress string, amount int64, now time.Time) error {
	if p.Status != StatusActive {
		return ErrProjectNotActive
	}
	if amount < p.MinContribution {
		return fmt.Errorf("%w: contribution must be at least %d", ErrInvalidContribution, p.MinContribution)
	}
	if amount > p.MaxContribution {
		return fmt.Errorf("%w: contribution cannot exceed %d", ErrInvalidContribution, p.MaxContribution)
	}
	p.Contributions = append(p.Contributions, Contribution{
		ContributorAddress: contributorAddress,
		Amount:             amount,
		Timestamp:          now.UTC(),
	})
	p.UpdatedAt = now.UTC()
	return nil
}

// Transition moves the project to target if the transition table allows it.
// The end transition additionally reports ErrProjectNotActive so callers can
// distinguish "already ended" from other illegal moves.
func (p *Project) Transition(target ProjectStatus, now time.Time) error {
	if !canTransition(p.Status, target) {
		if target == StatusEnded {
			return fmt.Errorf("%w: cannot end project in status %q", ErrProjectNotActive, p.Status)
		}
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, target)
	}
	p.Status = target
	p.UpdatedAt = now.UTC()
	return nil
}

// Clone returns a deep copy of p. The contribution slice is copied so the
// clone can be mutated without aliasing the original's history.
func (p *Project) Clone() *Project {
	c := *p
	c.Contributions = make([]Contribution, len(p.Contributions))
	copy(c.Contributions, p.Contributions)
	return &c
}
