package store

import (
	"context"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

const maxDiscountedUsers = 10

var discountPercents = []int{25, 30, 50}

// DeleteIncompleteRows removes accounts missing a required field, then users missing
// one. Users still referenced by an account are kept.
func (s *Store) DeleteIncompleteRows(ctx context.Context) (domain.CleanupReport, error) {
	var report domain.CleanupReport
	err := s.withTx(ctx, "DeleteIncompleteRows", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM accounts
			WHERE user_id IS NULL OR type IS NULL OR account_number IS NULL
			   OR bank_id IS NULL OR currency IS NULL OR amount IS NULL`)
		if err != nil {
			return err
		}
		report.Accounts = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `
			DELETE FROM users u
			WHERE (u.name IS NULL OR u.surname IS NULL OR u.accounts IS NULL)
			  AND NOT EXISTS (SELECT 1 FROM accounts a WHERE a.user_id = u.id)`)
		if err != nil {
			return err
		}
		report.Users = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return domain.CleanupReport{}, err
	}

	s.log.Info().
		Int64("accounts", report.Accounts).
		Int64("users", report.Users).
		Msg("Deleted incomplete users and accounts")
	return report, nil
}

// AssignRandomDiscounts picks up to ten distinct users and gives each a discount.
// The result is reported only, nothing is stored.
func (s *Store) AssignRandomDiscounts(ctx context.Context) ([]domain.Discount, error) {
	var ids []int64
	err := s.withReadTx(ctx, "AssignRandomDiscounts", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, "SELECT id FROM users ORDER BY id")
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		return err
	})
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	discounts := pickDiscounts(s.rng, ids, maxDiscountedUsers)
	s.rngMu.Unlock()

	s.log.Info().Interface("discounts", discounts).Msg("Assigned discounts")
	return discounts, nil
}

// pickDiscounts samples up to limit ids without replacement and draws a percent for each.
func pickDiscounts(rng *rand.Rand, ids []int64, limit int) []domain.Discount {
	pool := make([]int64, len(ids))
	copy(pool, ids)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := min(limit, len(pool))
	out := make([]domain.Discount, 0, n)
	for _, id := range pool[:n] {
		out = append(out, domain.Discount{
			UserID:  id,
			Percent: discountPercents[rng.IntN(len(discountPercents))],
		})
	}
	return out
}
