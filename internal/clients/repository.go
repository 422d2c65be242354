package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-events/internal/shared"
)

// Repository is the persistence surface the client service needs.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Client, error)
}

const selectClient = `
	SELECT id, full_name, email, phone, company_name, creation_date, last_contact, commercial_collaborator_id
	FROM clients`

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByID fetches a client by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx, selectClient+` WHERE id = $1`, id).
		Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.CompanyName, &c.CreationDate, &c.LastContact, &c.CommercialCollaboratorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new client.
func (r *PGRepository) Create(ctx context.Context, c *Client) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clients (full_name, email, phone, company_name, commercial_collaborator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, creation_date`,
		c.FullName, c.Email, c.Phone, c.CompanyName, c.CommercialCollaboratorID).
		Scan(&c.ID, &c.CreationDate)
}

// Update persists every mutable column of the client.
func (r *PGRepository) Update(ctx context.Context, c *Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET full_name = $2, email = $3, phone = $4, company_name = $5, last_contact = $6
		WHERE id = $1`,
		c.ID, c.FullName, c.Email, c.Phone, c.CompanyName, c.LastContact)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the client. The schema cascades deletion to the client's
// contracts and their events.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns all clients ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, selectClient+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.CompanyName, &c.CreationDate, &c.LastContact, &c.CommercialCollaboratorID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
