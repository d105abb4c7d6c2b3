package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

// AddBanks inserts every bank or none.
func (s *Store) AddBanks(ctx context.Context, banks ...domain.NewBank) (domain.Result, error) {
	names := make([]string, 0, len(banks))
	for i, b := range banks {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			err := fmt.Errorf("AddBanks: item %d: %w", i, &domain.FormatError{Field: "name", Reason: "must not be empty"})
			return domain.ResultFromError(err), err
		}
		names = append(names, name)
	}

	if len(names) > 0 {
		err := s.withTx(ctx, "AddBanks", func(tx pgx.Tx) error {
			batch := &pgx.Batch{}
			for _, name := range names {
				batch.Queue("INSERT INTO banks (name) VALUES ($1)", name)
			}
			return tx.SendBatch(ctx, batch).Close()
		})
		if err != nil {
			return domain.ResultFromError(err), err
		}
	}

	return domain.Success(fmt.Sprintf("Added %d banks", len(names)), len(names)), nil
}

func (s *Store) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	var banks []domain.Bank
	err := s.withReadTx(ctx, "ListBanks", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, "SELECT id, name FROM banks ORDER BY id")
		if err != nil {
			return err
		}
		banks, err = pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Bank])
		return err
	})
	return banks, err
}
