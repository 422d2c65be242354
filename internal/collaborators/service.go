package collaborators

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/epic-events/epic-events/internal/rbac"
	"github.com/epic-events/epic-events/internal/shared"
)

// RoleDirectory resolves role references during create/update.
type RoleDirectory interface {
	RoleByID(ctx context.Context, id int64) (rbac.Role, error)
}

// Service wraps collaborator business rules.
type Service struct {
	repo     Repository
	roles    RoleDirectory
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository, roles RoleDirectory) *Service {
	return &Service{repo: repo, roles: roles, validate: validator.New()}
}

// CreateInput carries the fields for a new collaborator.
type CreateInput struct {
	EmployeeNumber int64  `validate:"required,gt=0"`
	Name           string `validate:"required"`
	Email          string `validate:"required,email"`
	RoleID         int64  `validate:"required,gt=0"`
	Password       string `validate:"required,min=6"`
}

// UpdateInput carries a partial update addressed by employee number. Nil
// pointer fields are "not supplied" and leave the stored value untouched;
// a non-nil pointer applies its value even when zero or empty.
type UpdateInput struct {
	EmployeeNumber int64   `validate:"required,gt=0"`
	Name           *string `validate:"omitempty,min=1"`
	Email          *string `validate:"omitempty,email"`
	RoleID         *int64  `validate:"omitempty,gt=0"`
	Password       *string `validate:"omitempty,min=6"`
}

// Authenticate validates email/password credentials. Failures are opaque:
// a bad email and a bad password report identically.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Collaborator, error) {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return c, nil
}

// FindActorByEmail resolves a token subject to the acting collaborator.
func (s *Service) FindActorByEmail(ctx context.Context, email string) (*shared.Actor, error) {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return actorOf(c), nil
}

// Create registers a new collaborator. The employee number and email must
// both be globally unique; the referenced role must exist. The password
// is hashed before it ever touches the repository.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Collaborator, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmployeeNumber(ctx, in.EmployeeNumber); err == nil {
		return nil, fmt.Errorf("%w: employee number %d already exists", shared.ErrUniqueness, in.EmployeeNumber)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}
	if _, err := s.roles.RoleByID(ctx, in.RoleID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: role %d", shared.ErrNotFound, in.RoleID)
		}
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	c := &Collaborator{
		EmployeeNumber: in.EmployeeNumber,
		Name:           in.Name,
		Email:          in.Email,
		RoleID:         in.RoleID,
		PasswordHash:   hash,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update mutates an existing collaborator addressed by employee number.
// A supplied password is rehashed; plaintext is never stored.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*Collaborator, error) {
	if err := shared.FromValidator(s.validate.Struct(in)); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByEmployeeNumber(ctx, in.EmployeeNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: collaborator %d", shared.ErrNotFound, in.EmployeeNumber)
		}
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Email != nil {
		if err := s.checkEmailFree(ctx, *in.Email, c.ID); err != nil {
			return nil, err
		}
		c.Email = *in.Email
	}
	if in.RoleID != nil {
		role, err := s.roles.RoleByID(ctx, *in.RoleID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, fmt.Errorf("%w: role %d", shared.ErrNotFound, *in.RoleID)
			}
			return nil, err
		}
		c.RoleID = role.ID
		c.RoleName = role.Name
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		c.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the collaborator addressed by employee number. Clients,
// contracts, and events they own survive with an empty owner reference.
func (s *Service) Delete(ctx context.Context, employeeNumber int64) error {
	c, err := s.repo.FindByEmployeeNumber(ctx, employeeNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: collaborator %d", shared.ErrNotFound, employeeNumber)
		}
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}

// List returns all collaborators.
func (s *Service) List(ctx context.Context) ([]Collaborator, error) {
	return s.repo.List(ctx)
}

// FindCommercial resolves id to a collaborator holding the sales role.
// A collaborator with any other role reads as not found, the same shape
// as a missing id, so callers cannot probe which ids exist.
func (s *Service) FindCommercial(ctx context.Context, id int64) (*Collaborator, error) {
	return s.findWithRole(ctx, id, rbac.RoleSales)
}

// FindSupport resolves id to a collaborator holding the support role.
func (s *Service) FindSupport(ctx context.Context, id int64) (*Collaborator, error) {
	return s.findWithRole(ctx, id, rbac.RoleSupport)
}

func (s *Service) findWithRole(ctx context.Context, id int64, role string) (*Collaborator, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.RoleName != role {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

// checkEmailFree rejects an email already held by a collaborator other
// than selfID.
func (s *Service) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: email %s already in use", shared.ErrUniqueness, email)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("collaborators: hash password: %w", err)
	}
	return string(hash), nil
}

func actorOf(c *Collaborator) *shared.Actor {
	return &shared.Actor{
		ID:             c.ID,
		EmployeeNumber: c.EmployeeNumber,
		Name:           c.Name,
		Email:          c.Email,
		RoleID:         c.RoleID,
		RoleName:       c.RoleName,
	}
}
