package contracts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-events/internal/shared"
)

// Repository is the persistence surface the contract service needs.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Contract, error)
	Create(ctx context.Context, c *Contract) error
	Update(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]Contract, error)
}

const selectContract = `
	SELECT id, client_id, commercial_collaborator_id, total_amount, amount_due, creation_date, signed
	FROM contracts`

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByID fetches a contract by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Contract, error) {
	var c Contract
	err := r.pool.QueryRow(ctx, selectContract+` WHERE id = $1`, id).
		Scan(&c.ID, &c.ClientID, &c.CommercialCollaboratorID, &c.TotalAmount, &c.AmountDue, &c.CreationDate, &c.Signed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contract.
func (r *PGRepository) Create(ctx context.Context, c *Contract) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO contracts (client_id, commercial_collaborator_id, total_amount, amount_due, signed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, creation_date`,
		c.ClientID, c.CommercialCollaboratorID, c.TotalAmount, c.AmountDue, c.Signed).
		Scan(&c.ID, &c.CreationDate)
}

// Update persists every mutable column of the contract.
func (r *PGRepository) Update(ctx context.Context, c *Contract) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contracts
		SET commercial_collaborator_id = $2, total_amount = $3, amount_due = $4, signed = $5
		WHERE id = $1`,
		c.ID, c.CommercialCollaboratorID, c.TotalAmount, c.AmountDue, c.Signed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the contract. Its event, if any, is deleted with it.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns contracts matching the filter, ordered by id.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Contract, error) {
	query := selectContract + ` WHERE TRUE`
	if filter.Unpaid {
		query += ` AND amount_due <> 0`
	}
	if filter.Unsigned {
		query += ` AND NOT signed`
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Contract
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.ClientID, &c.CommercialCollaboratorID, &c.TotalAmount, &c.AmountDue, &c.CreationDate, &c.Signed); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
