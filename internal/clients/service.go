package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/epic-events/epic-events/internal/shared"
)

// Service wraps client business rules.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// CreateInput carries the fields for a new client. The commercial owner
// is never supplied: it is stamped from the acting sales collaborator.
type CreateInput struct {
	FullName    string `validate:"required"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"required"`
	CompanyName string `validate:"required"`
}

// UpdateInput carries a partial client update. Nil means "not supplied".
type UpdateInput struct {
	ID          int64   `validate:"required,gt=0"`
	FullName    *string `validate:"omitempty,min=1"`
	Email       *string `validate:"omitempty,email"`
	Phone       *string `validate:"omitempty,min=1"`
	CompanyName *string `validate:"omitempty,min=1"`
}

// Create registers a new client owned by the acting collaborator.
func (s *Service) Create(ctx context.Context, actor *shared.Actor, in CreateInput) (*Client, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}
	owner := actor.ID
	c := &Client{
		FullName:                 in.FullName,
		Email:                    in.Email,
		Phone:                    in.Phone,
		CompanyName:              in.CompanyName,
		CommercialCollaboratorID: &owner,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update mutates a client. A sales actor may only touch clients they own.
func (s *Service) Update(ctx context.Context, actor *shared.Actor, in UpdateInput) (*Client, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %d", shared.ErrNotFound, in.ID)
		}
		return nil, err
	}
	if err := s.requireOwnership(actor, c); err != nil {
		return nil, err
	}

	if in.FullName != nil {
		c.FullName = *in.FullName
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.CompanyName != nil {
		c.CompanyName = *in.CompanyName
	}
	now := time.Now().UTC()
	c.LastContact = &now

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client the actor owns. Contracts and events attached
// to the client are deleted with it.
func (s *Service) Delete(ctx context.Context, actor *shared.Actor, id int64) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: client %d", shared.ErrNotFound, id)
		}
		return err
	}
	if err := s.requireOwnership(actor, c); err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Get fetches one client by id.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.FindByID(ctx, id)
}

// requireOwnership enforces that a sales actor only mutates their own
// clients. Non-sales roles never reach these operations through the gate,
// but the rule is enforced here regardless of the caller.
func (s *Service) requireOwnership(actor *shared.Actor, c *Client) error {
	if actor.IsSales() && !c.OwnedBy(actor.ID) {
		return fmt.Errorf("%w: client %d belongs to another commercial", shared.ErrOwnership, c.ID)
	}
	return nil
}
