package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

// TransferParties reads what the engine needs before it resolves a rate.
// Nothing is locked here; ExecTransfer re-checks the balance under lock.
func (s *Store) TransferParties(ctx context.Context, senderID, receiverID int64) (domain.TransferParties, error) {
	var p domain.TransferParties
	err := s.withReadTx(ctx, "TransferParties", func(tx pgx.Tx) error {
		balance, currency, err := readParty(ctx, tx, "sender", senderID)
		if err != nil {
			return err
		}
		p.SenderBalance, p.SenderCurrency = balance, currency

		_, p.ReceiverCurrency, err = readParty(ctx, tx, "receiver", receiverID)
		return err
	})
	return p, err
}

func readParty(ctx context.Context, tx pgx.Tx, side string, id int64) (decimal.Decimal, string, error) {
	var (
		balance  pgtype.Numeric
		currency pgtype.Text
	)
	err := tx.QueryRow(ctx, "SELECT amount, currency FROM accounts WHERE id = $1", id).Scan(&balance, &currency)
	if err == pgx.ErrNoRows {
		return decimal.Zero, "", fmt.Errorf("%s account %d: %w", side, id, domain.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, "", err
	}
	if !balance.Valid || !currency.Valid {
		return decimal.Zero, "", incompleteAccount(side, id)
	}
	return fromNumeric(balance), currency.String, nil
}

// incompleteAccount rejects rows imported without a balance or currency. Crediting
// NULL would leave NULL and lose the money.
func incompleteAccount(side string, id int64) error {
	return &domain.FormatError{
		Field:  side + "_account_id",
		Value:  fmt.Sprint(id),
		Reason: "account has no balance or currency",
	}
}

type lockedAccount struct {
	balance  decimal.Decimal
	bankName string
}

func lockAccount(ctx context.Context, tx pgx.Tx, id int64) (lockedAccount, bool, error) {
	var (
		la       lockedAccount
		balance  pgtype.Numeric
		currency pgtype.Text
	)
	err := tx.QueryRow(ctx, `
		SELECT a.amount, a.currency, COALESCE(b.name, '')
		FROM accounts a
		LEFT JOIN banks b ON b.id = a.bank_id
		WHERE a.id = $1
		FOR UPDATE OF a`, id,
	).Scan(&balance, &currency, &la.bankName)
	if err != nil {
		return la, false, err
	}
	la.balance = fromNumeric(balance)
	return la, balance.Valid && currency.Valid, nil
}

// ExecTransfer debits the sender, credits the receiver with the converted amount and
// appends the log row in one transaction. Both rows are locked in ascending id order
// so concurrent transfers over the same pair cannot deadlock, and the debit only
// applies while the balance still covers it.
func (s *Store) ExecTransfer(ctx context.Context, p domain.TransferParams) (domain.BankTransaction, error) {
	entry := domain.BankTransaction{
		SenderAccountID:   p.SenderAccountID,
		ReceiverAccountID: p.ReceiverAccountID,
		Currency:          p.Currency,
		Amount:            p.Amount,
		Datetime:          p.Datetime,
	}

	err := s.withTx(ctx, "ExecTransfer", func(tx pgx.Tx) error {
		if p.SenderAccountID == p.ReceiverAccountID {
			return domain.ErrSameAccount
		}

		firstID, secondID := p.SenderAccountID, p.ReceiverAccountID
		if firstID > secondID {
			firstID, secondID = secondID, firstID
		}

		locked := make(map[int64]lockedAccount, 2)
		for _, id := range []int64{firstID, secondID} {
			side := "receiver"
			if id == p.SenderAccountID {
				side = "sender"
			}
			la, complete, err := lockAccount(ctx, tx, id)
			if err == pgx.ErrNoRows {
				return fmt.Errorf("%s account %d: %w", side, id, domain.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("lock acquisition failed: %w", err)
			}
			if !complete {
				return incompleteAccount(side, id)
			}
			locked[id] = la
		}

		sender, receiver := locked[p.SenderAccountID], locked[p.ReceiverAccountID]
		if sender.balance.LessThan(p.Amount) {
			return fmt.Errorf("account %d holds %s: %w", p.SenderAccountID, sender.balance, domain.ErrInsufficientFunds)
		}

		tag, err := tx.Exec(ctx,
			"UPDATE accounts SET amount = amount - $1 WHERE id = $2 AND amount >= $1",
			toNumeric(p.Amount), p.SenderAccountID,
		)
		if err != nil {
			return fmt.Errorf("debit failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("account %d: %w", p.SenderAccountID, domain.ErrInsufficientFunds)
		}

		if _, err := tx.Exec(ctx,
			"UPDATE accounts SET amount = amount + $1 WHERE id = $2",
			toNumeric(p.Converted), p.ReceiverAccountID,
		); err != nil {
			return fmt.Errorf("credit failed: %w", err)
		}

		entry.SenderBankName = sender.bankName
		entry.ReceiverBankName = receiver.bankName
		return tx.QueryRow(ctx, `
			INSERT INTO bank_transactions
				(sender_bank_name, sender_account_id, receiver_bank_name, receiver_account_id, currency, amount, datetime)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			entry.SenderBankName, entry.SenderAccountID,
			entry.ReceiverBankName, entry.ReceiverAccountID,
			entry.Currency, toNumeric(entry.Amount), entry.Datetime,
		).Scan(&entry.ID)
	})
	if err != nil {
		return domain.BankTransaction{}, err
	}
	return entry, nil
}
