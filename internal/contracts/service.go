package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/epic-events/epic-events/internal/clients"
	"github.com/epic-events/epic-events/internal/collaborators"
	"github.com/epic-events/epic-events/internal/shared"
)

// ErrAmountExceedsTotal is the ordering failure: both amounts are well
// formed but the amount due is larger than the total. Distinct from the
// structural failures (negative or non-numeric values).
var ErrAmountExceedsTotal = errors.New("amount due exceeds total amount")

// ClientDirectory resolves client references.
type ClientDirectory interface {
	Get(ctx context.Context, id int64) (*clients.Client, error)
}

// CommercialDirectory resolves a collaborator id to a sales collaborator.
// Wrong-role ids read as not found.
type CommercialDirectory interface {
	FindCommercial(ctx context.Context, id int64) (*collaborators.Collaborator, error)
}

// EventChecker reports whether a contract already holds an event.
type EventChecker interface {
	ContractHasEvent(ctx context.Context, contractID int64) (bool, error)
}

// Service wraps contract business rules.
type Service struct {
	repo        Repository
	clients     ClientDirectory
	commercials CommercialDirectory
	events      EventChecker
	validate    *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository, clientDir ClientDirectory, commercials CommercialDirectory, events EventChecker) *Service {
	return &Service{
		repo:        repo,
		clients:     clientDir,
		commercials: commercials,
		events:      events,
		validate:    validator.New(),
	}
}

// CreateInput carries the fields for a new contract.
type CreateInput struct {
	ClientID     int64   `validate:"required,gt=0"`
	CommercialID int64   `validate:"required,gt=0"`
	TotalAmount  float64 `validate:"gte=0"`
	AmountDue    float64 `validate:"gte=0"`
	Signed       bool
}

// UpdateInput carries a partial contract update. Nil means "not supplied".
type UpdateInput struct {
	ID           int64    `validate:"required,gt=0"`
	CommercialID *int64   `validate:"omitempty,gt=0"`
	TotalAmount  *float64 `validate:"omitempty,gte=0"`
	AmountDue    *float64 `validate:"omitempty,gte=0"`
	Signed       *bool
}

// Create registers a new contract after resolving its client and sales
// collaborator references.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Contract, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}
	if in.AmountDue > in.TotalAmount {
		return nil, ErrAmountExceedsTotal
	}
	if _, err := s.clients.Get(ctx, in.ClientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %d", shared.ErrNotFound, in.ClientID)
		}
		return nil, err
	}
	commercial, err := s.commercials.FindCommercial(ctx, in.CommercialID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: commercial collaborator %d", shared.ErrNotFound, in.CommercialID)
		}
		return nil, err
	}

	c := &Contract{
		ClientID:                 in.ClientID,
		CommercialCollaboratorID: &commercial.ID,
		TotalAmount:              in.TotalAmount,
		AmountDue:                in.AmountDue,
		Signed:                   in.Signed,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update mutates a contract. The amount ordering rule is re-checked
// against the merged effective values, and a contract already holding an
// event cannot be reopened to unsigned.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*Contract, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: contract %d", shared.ErrNotFound, in.ID)
		}
		return nil, err
	}

	total := c.TotalAmount
	due := c.AmountDue
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	}
	if in.AmountDue != nil {
		due = *in.AmountDue
	}
	if due > total {
		return nil, ErrAmountExceedsTotal
	}

	if in.Signed != nil && !*in.Signed && c.Signed {
		held, err := s.events.ContractHasEvent(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if held {
			return nil, fmt.Errorf("%w: contract %d has an event and cannot be unsigned", shared.ErrStateConflict, c.ID)
		}
	}

	if in.CommercialID != nil {
		commercial, err := s.commercials.FindCommercial(ctx, *in.CommercialID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, fmt.Errorf("%w: commercial collaborator %d", shared.ErrNotFound, *in.CommercialID)
			}
			return nil, err
		}
		c.CommercialCollaboratorID = &commercial.ID
	}
	c.TotalAmount = total
	c.AmountDue = due
	if in.Signed != nil {
		c.Signed = *in.Signed
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a contract.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: contract %d", shared.ErrNotFound, id)
		}
		return err
	}
	return nil
}

// List returns contracts matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one contract by id.
func (s *Service) Get(ctx context.Context, id int64) (*Contract, error) {
	return s.repo.FindByID(ctx, id)
}
