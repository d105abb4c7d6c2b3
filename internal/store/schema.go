package store

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the four ledger tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.withTx(ctx, "EnsureSchema", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, schemaSQL)
		return err
	})
}
