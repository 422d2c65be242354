package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/epic-events/epic-events/internal/collaborators"
	"github.com/epic-events/epic-events/internal/contracts"
	"github.com/epic-events/epic-events/internal/shared"
)

// ContractDirectory resolves contract references.
type ContractDirectory interface {
	Get(ctx context.Context, id int64) (*contracts.Contract, error)
}

// SupportDirectory resolves a collaborator id to a support collaborator.
// Wrong-role ids read as not found.
type SupportDirectory interface {
	FindSupport(ctx context.Context, id int64) (*collaborators.Collaborator, error)
}

// Service wraps event business rules.
type Service struct {
	repo      Repository
	contracts ContractDirectory
	support   SupportDirectory
	validate  *validator.Validate

	// now is wall-clock by default; replaced in tests.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, contractDir ContractDirectory, support SupportDirectory) *Service {
	return &Service{
		repo:      repo,
		contracts: contractDir,
		support:   support,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// CreateInput carries the fields for a new event. The client is derived
// from the contract, never supplied directly.
type CreateInput struct {
	ContractID  int64     `validate:"required,gt=0"`
	Description string    `validate:"required"`
	DateStart   time.Time `validate:"required"`
	DateEnd     time.Time `validate:"required"`
	SupportID   *int64    `validate:"omitempty,gt=0"`
	Location    string    `validate:"required"`
	Attendees   int       `validate:"gte=0"`
	Notes       *string
}

// SupportUpdateInput is the field set a support assignee may edit on
// their own event. Nil means "not supplied"; a non-nil pointer applies
// its value even when zero or empty, so attendees can be set to 0.
type SupportUpdateInput struct {
	ID          int64      `validate:"required,gt=0"`
	ContractID  *int64     `validate:"omitempty,gt=0"`
	Description *string    `validate:"omitempty,min=1"`
	DateStart   *time.Time
	DateEnd     *time.Time
	Location    *string    `validate:"omitempty,min=1"`
	Attendees   *int       `validate:"omitempty,gte=0"`
	Notes       *string
}

// ManagementUpdateInput is the field set management may edit: only the
// support assignment.
type ManagementUpdateInput struct {
	ID        int64 `validate:"required,gt=0"`
	SupportID int64 `validate:"required,gt=0"`
}

// Create registers a new event against a signed contract that does not
// already hold one. The start date must lie in the future at submission.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Event, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}
	if !in.DateEnd.After(in.DateStart) {
		return nil, shared.NewValidationError("date_end", "must be after the start date")
	}
	if !in.DateStart.After(s.now()) {
		return nil, shared.NewValidationError("date_start", "must be in the future")
	}

	contract, err := s.contracts.Get(ctx, in.ContractID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: contract %d", shared.ErrNotFound, in.ContractID)
		}
		return nil, err
	}
	if !contract.Signed {
		return nil, fmt.Errorf("%w: contract %d must be signed before an event is created", shared.ErrStateConflict, contract.ID)
	}
	held, err := s.repo.ContractHasEvent(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, fmt.Errorf("%w: contract %d already has an event", shared.ErrStateConflict, contract.ID)
	}

	e := &Event{
		ClientID:    contract.ClientID,
		ContractID:  contract.ID,
		Description: in.Description,
		DateStart:   in.DateStart,
		DateEnd:     in.DateEnd,
		Location:    in.Location,
		Attendees:   in.Attendees,
		Notes:       in.Notes,
	}
	if in.SupportID != nil {
		support, err := s.support.FindSupport(ctx, *in.SupportID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, fmt.Errorf("%w: support collaborator %d", shared.ErrNotFound, *in.SupportID)
			}
			return nil, err
		}
		e.SupportCollaboratorID = &support.ID
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateAsSupport applies a support collaborator's edits to an event
// assigned to them. The date ordering rule is re-checked against the
// merged effective start and end, fetching the unchanged sibling from the
// stored event when only one of the two is supplied.
func (s *Service) UpdateAsSupport(ctx context.Context, actor *shared.Actor, in SupportUpdateInput) (*Event, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", shared.ErrNotFound, in.ID)
		}
		return nil, err
	}
	if !e.AssignedTo(actor.ID) {
		return nil, fmt.Errorf("%w: event %d is assigned to another collaborator", shared.ErrOwnership, e.ID)
	}

	start := e.DateStart
	end := e.DateEnd
	if in.DateStart != nil {
		start = *in.DateStart
	}
	if in.DateEnd != nil {
		end = *in.DateEnd
	}
	if !end.After(start) {
		return nil, shared.NewValidationError("date_end", "must be after the start date")
	}
	if in.DateStart != nil && !start.After(s.now()) {
		return nil, shared.NewValidationError("date_start", "must be in the future")
	}

	if in.ContractID != nil && *in.ContractID != e.ContractID {
		contract, err := s.contracts.Get(ctx, *in.ContractID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, fmt.Errorf("%w: contract %d", shared.ErrNotFound, *in.ContractID)
			}
			return nil, err
		}
		if !contract.Signed {
			return nil, fmt.Errorf("%w: contract %d must be signed", shared.ErrStateConflict, contract.ID)
		}
		held, err := s.repo.ContractHasEvent(ctx, contract.ID)
		if err != nil {
			return nil, err
		}
		if held {
			return nil, fmt.Errorf("%w: contract %d already has an event", shared.ErrStateConflict, contract.ID)
		}
		e.ContractID = contract.ID
		e.ClientID = contract.ClientID
	}

	if in.Description != nil {
		e.Description = *in.Description
	}
	e.DateStart = start
	e.DateEnd = end
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.Attendees != nil {
		// Zero is a legitimate updated value; only nil means "keep".
		e.Attendees = *in.Attendees
	}
	if in.Notes != nil {
		e.Notes = in.Notes
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateAsManagement reassigns the event's support collaborator; no other
// field is touched on this path.
func (s *Service) UpdateAsManagement(ctx context.Context, in ManagementUpdateInput) (*Event, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", shared.ErrNotFound, in.ID)
		}
		return nil, err
	}
	support, err := s.support.FindSupport(ctx, in.SupportID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: support collaborator %d", shared.ErrNotFound, in.SupportID)
		}
		return nil, err
	}
	e.SupportCollaboratorID = &support.ID

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: event %d", shared.ErrNotFound, id)
		}
		return err
	}
	return nil
}

// List returns events matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	return s.repo.List(ctx, filter)
}
