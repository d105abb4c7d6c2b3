package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

// TransactionWindow is how far back LastTransactions looks.
const TransactionWindow = 90 * 24 * time.Hour

// UsersWithDebts lists users holding at least one account with a negative balance.
func (s *Store) UsersWithDebts(ctx context.Context) ([]domain.Debtor, error) {
	var debtors []domain.Debtor
	err := s.withReadTx(ctx, "UsersWithDebts", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT DISTINCT u.id, COALESCE(u.name, '') || ' ' || COALESCE(u.surname, '')
			FROM users u
			JOIN accounts a ON a.user_id = u.id
			WHERE a.amount < 0
			ORDER BY u.id`)
		if err != nil {
			return err
		}
		debtors, err = pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Debtor])
		return err
	})
	return debtors, err
}

// BiggestCapital returns the bank whose accounts sum to the highest balance.
func (s *Store) BiggestCapital(ctx context.Context) (domain.BankCapital, error) {
	var (
		out   domain.BankCapital
		total pgtype.Numeric
	)
	err := s.withReadTx(ctx, "BiggestCapital", func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT b.name, SUM(a.amount) AS total
			FROM banks b
			JOIN accounts a ON a.bank_id = b.id
			GROUP BY b.id, b.name
			ORDER BY total DESC NULLS LAST, b.id
			LIMIT 1`).Scan(&out.BankName, &total)
		if err == pgx.ErrNoRows {
			return fmt.Errorf("no bank holds accounts: %w", domain.ErrNotFound)
		}
		return err
	})
	out.Total = fromNumeric(total)
	return out, err
}

// OldestClient returns the bank holding an account of the user with the earliest birth date.
func (s *Store) OldestClient(ctx context.Context) (domain.OldestClient, error) {
	var out domain.OldestClient
	err := s.withReadTx(ctx, "OldestClient", func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT b.name, u.birth_day
			FROM banks b
			JOIN accounts a ON a.bank_id = b.id
			JOIN users u ON u.id = a.user_id
			WHERE u.birth_day IS NOT NULL
			ORDER BY u.birth_day ASC, b.id
			LIMIT 1`).Scan(&out.BankName, &out.BirthDay)
		if err == pgx.ErrNoRows {
			return fmt.Errorf("no client with a birth date: %w", domain.ErrNotFound)
		}
		return err
	})
	return out, err
}

// MostUniqueSenders returns the sender bank with the most distinct sending users in the log.
func (s *Store) MostUniqueSenders(ctx context.Context) (domain.UniqueSenders, error) {
	var out domain.UniqueSenders
	err := s.withReadTx(ctx, "MostUniqueSenders", func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT t.sender_bank_name, COUNT(DISTINCT a.user_id) AS senders
			FROM bank_transactions t
			JOIN accounts a ON a.id = t.sender_account_id
			GROUP BY t.sender_bank_name
			ORDER BY senders DESC, t.sender_bank_name
			LIMIT 1`).Scan(&out.BankName, &out.Senders)
		if err == pgx.ErrNoRows {
			return fmt.Errorf("no transactions logged: %w", domain.ErrNotFound)
		}
		return err
	})
	return out, err
}

// LastTransactions returns log rows sent from any account of userID, newest first,
// from the last TransactionWindow. The lower bound is inclusive.
func (s *Store) LastTransactions(ctx context.Context, userID int64) ([]domain.BankTransaction, error) {
	since := s.now().Add(-TransactionWindow)

	var out []domain.BankTransaction
	err := s.withReadTx(ctx, "LastTransactions", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, sender_bank_name, sender_account_id, receiver_bank_name,
			       receiver_account_id, currency, amount, datetime
			FROM bank_transactions
			WHERE sender_account_id IN (SELECT id FROM accounts WHERE user_id = $1)
			  AND datetime >= $2
			ORDER BY datetime DESC, id DESC`, userID, since)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				t      domain.BankTransaction
				amount pgtype.Numeric
			)
			if err := rows.Scan(&t.ID, &t.SenderBankName, &t.SenderAccountID, &t.ReceiverBankName,
				&t.ReceiverAccountID, &t.Currency, &amount, &t.Datetime); err != nil {
				return err
			}
			t.Amount = fromNumeric(amount)
			out = append(out, t)
		}
		return rows.Err()
	})
	return out, err
}
