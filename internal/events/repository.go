package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-events/internal/shared"
)

// Repository is the persistence surface the event service needs.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Event, error)
	ContractHasEvent(ctx context.Context, contractID int64) (bool, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]Event, error)
}

const selectEvent = `
	SELECT id, client_id, contract_id, description, date_start, date_end, support_collaborator_id, location, attendees, notes
	FROM events`

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByID fetches an event by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Event, error) {
	var e Event
	err := r.pool.QueryRow(ctx, selectEvent+` WHERE id = $1`, id).
		Scan(&e.ID, &e.ClientID, &e.ContractID, &e.Description, &e.DateStart, &e.DateEnd, &e.SupportCollaboratorID, &e.Location, &e.Attendees, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ContractHasEvent reports whether any event references the contract.
func (r *PGRepository) ContractHasEvent(ctx context.Context, contractID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE contract_id = $1)`, contractID).Scan(&exists)
	return exists, err
}

// Create inserts a new event. The one-event-per-contract unique index
// backs up the service-level check.
func (r *PGRepository) Create(ctx context.Context, e *Event) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (client_id, contract_id, description, date_start, date_end, support_collaborator_id, location, attendees, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		e.ClientID, e.ContractID, e.Description, e.DateStart, e.DateEnd, e.SupportCollaboratorID, e.Location, e.Attendees, e.Notes).
		Scan(&e.ID)
	return err
}

// Update persists every mutable column of the event.
func (r *PGRepository) Update(ctx context.Context, e *Event) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET contract_id = $2, client_id = $3, description = $4, date_start = $5, date_end = $6,
		    support_collaborator_id = $7, location = $8, attendees = $9, notes = $10
		WHERE id = $1`,
		e.ID, e.ContractID, e.ClientID, e.Description, e.DateStart, e.DateEnd,
		e.SupportCollaboratorID, e.Location, e.Attendees, e.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the event.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns events matching the filter, ordered by start date.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	query := selectEvent + ` WHERE TRUE`
	args := []any{}
	if filter.SupportID != nil {
		args = append(args, *filter.SupportID)
		query += ` AND support_collaborator_id = $1`
	}
	if filter.Unassigned {
		query += ` AND support_collaborator_id IS NULL`
	}
	query += ` ORDER BY date_start`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.ClientID, &e.ContractID, &e.Description, &e.DateStart, &e.DateEnd, &e.SupportCollaboratorID, &e.Location, &e.Attendees, &e.Notes); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
