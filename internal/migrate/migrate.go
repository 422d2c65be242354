// Package migrate applies the embedded database schema. The DDL is
// idempotent, so running it repeatedly is safe.
package migrate

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Apply creates every table the CLI needs if it does not already exist.
// The whole DDL runs in one transaction so a failure partway through
// leaves no half-created schema behind.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schema); err != nil {
			return fmt.Errorf("migrate: apply schema: %w", err)
		}
		return nil
	})
}
