package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/punchamoorthee/bankledger/internal/domain"
	"github.com/punchamoorthee/bankledger/internal/validate"
)

var accountColumns = []string{"user_id", "type", "account_number", "bank_id", "currency", "amount", "status"}

func validateAccount(a domain.NewAccount) ([]any, error) {
	if a.UserID <= 0 {
		return nil, &domain.FormatError{Field: "user_id", Value: fmt.Sprint(a.UserID), Reason: "must reference a user"}
	}
	if a.BankID <= 0 {
		return nil, &domain.FormatError{Field: "bank_id", Value: fmt.Sprint(a.BankID), Reason: "must reference a bank"}
	}
	number, err := validate.AccountNumber(a.AccountNumber)
	if err != nil {
		return nil, err
	}
	typ, err := validate.AccountType(a.Type)
	if err != nil {
		return nil, err
	}
	status, err := validate.AccountStatus(a.Status)
	if err != nil {
		return nil, err
	}
	currency, err := validate.Currency(a.Currency)
	if err != nil {
		return nil, err
	}
	return []any{a.UserID, string(typ), number, a.BankID, currency, toNumeric(a.Amount), string(status)}, nil
}

// AddAccounts validates the whole batch, then copies it in with a single COPY.
func (s *Store) AddAccounts(ctx context.Context, accounts ...domain.NewAccount) (domain.Result, error) {
	rows := make([][]any, 0, len(accounts))
	for i, a := range accounts {
		row, err := validateAccount(a)
		if err != nil {
			err = fmt.Errorf("AddAccounts: item %d: %w", i, err)
			return domain.ResultFromError(err), err
		}
		rows = append(rows, row)
	}

	var copied int64
	if len(rows) > 0 {
		err := s.withTx(ctx, "AddAccounts", func(tx pgx.Tx) error {
			n, err := tx.CopyFrom(ctx, pgx.Identifier{"accounts"}, accountColumns, pgx.CopyFromRows(rows))
			copied = n
			return err
		})
		if err != nil {
			return domain.ResultFromError(err), err
		}
	}

	return domain.Success(fmt.Sprintf("Added %d accounts", copied), int(copied)), nil
}

const selectAccount = `
	SELECT id, COALESCE(user_id, 0), COALESCE(type, ''), COALESCE(account_number, ''),
	       COALESCE(bank_id, 0), COALESCE(currency, ''), amount, COALESCE(status, '')
	FROM accounts`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var (
		a      domain.Account
		typ    string
		status string
		amount pgtype.Numeric
	)
	if err := row.Scan(&a.ID, &a.UserID, &typ, &a.AccountNumber, &a.BankID, &a.Currency, &amount, &status); err != nil {
		return domain.Account{}, err
	}
	a.Type = domain.AccountType(typ)
	a.Status = domain.AccountStatus(status)
	a.Amount = fromNumeric(amount)
	return a, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	var acc domain.Account
	err := s.withReadTx(ctx, "GetAccount", func(tx pgx.Tx) error {
		a, err := scanAccount(tx.QueryRow(ctx, selectAccount+" WHERE id = $1", id))
		if err == pgx.ErrNoRows {
			return fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
		}
		acc = a
		return err
	})
	return acc, err
}

func (s *Store) ListAccountsByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	var out []domain.Account
	err := s.withReadTx(ctx, "ListAccountsByUser", func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectAccount+" WHERE user_id = $1 ORDER BY id", userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			a, err := scanAccount(rows)
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	return out, err
}
