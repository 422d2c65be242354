package collaborators

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-events/internal/platform/db"
	"github.com/epic-events/epic-events/internal/shared"
)

// Repository is the persistence surface the collaborator service needs.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Collaborator, error)
	FindByEmail(ctx context.Context, email string) (*Collaborator, error)
	FindByEmployeeNumber(ctx context.Context, employeeNumber int64) (*Collaborator, error)
	Create(ctx context.Context, c *Collaborator) error
	Update(ctx context.Context, c *Collaborator) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Collaborator, error)
}

const selectCollaborator = `
	SELECT c.id, c.employee_number, c.name, c.email, c.role_id, r.name, c.password
	FROM collaborators c
	JOIN roles r ON r.id = c.role_id`

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByID fetches a collaborator by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Collaborator, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectCollaborator+` WHERE c.id = $1`, id))
}

// FindByEmail fetches a collaborator by unique email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Collaborator, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectCollaborator+` WHERE c.email = $1`, email))
}

// FindByEmployeeNumber fetches a collaborator by unique employee number.
func (r *PGRepository) FindByEmployeeNumber(ctx context.Context, employeeNumber int64) (*Collaborator, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectCollaborator+` WHERE c.employee_number = $1`, employeeNumber))
}

// Create inserts a new collaborator. Duplicate employee numbers or emails
// surface as shared.ErrUniqueness.
func (r *PGRepository) Create(ctx context.Context, c *Collaborator) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO collaborators (employee_number, name, email, role_id, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.EmployeeNumber, c.Name, c.Email, c.RoleID, c.PasswordHash).Scan(&c.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrUniqueness
		}
		return err
	}
	return nil
}

// Update persists every mutable column of the collaborator.
func (r *PGRepository) Update(ctx context.Context, c *Collaborator) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE collaborators
		SET name = $2, email = $3, role_id = $4, password = $5
		WHERE id = $1`,
		c.ID, c.Name, c.Email, c.RoleID, c.PasswordHash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrUniqueness
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the collaborator. The schema SET NULLs the owning
// references held by clients, contracts, and events rather than
// cascading their deletion.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns all collaborators ordered by employee number.
func (r *PGRepository) List(ctx context.Context) ([]Collaborator, error) {
	rows, err := r.pool.Query(ctx, selectCollaborator+` ORDER BY c.employee_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Collaborator
	for rows.Next() {
		var c Collaborator
		if err := rows.Scan(&c.ID, &c.EmployeeNumber, &c.Name, &c.Email, &c.RoleID, &c.RoleName, &c.PasswordHash); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepository) scanOne(row pgx.Row) (*Collaborator, error) {
	var c Collaborator
	err := row.Scan(&c.ID, &c.EmployeeNumber, &c.Name, &c.Email, &c.RoleID, &c.RoleName, &c.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
