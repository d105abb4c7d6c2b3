package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountCredit AccountType = "credit"
	AccountDebit  AccountType = "debit"
)

type AccountStatus string

const (
	StatusNone     AccountStatus = ""
	StatusGold     AccountStatus = "gold"
	StatusSilver   AccountStatus = "silver"
	StatusPlatinum AccountStatus = "platinum"
)

// Bank is immutable once created.
type Bank struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User holds the split name of an account owner. Accounts is a free-form
// identifier list kept as text, it is not a relation.
type User struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Surname  string     `json:"surname"`
	BirthDay *time.Time `json:"birth_day,omitempty"`
	Accounts string     `json:"accounts"`
}

// Account represents a balance held by one user at one bank.
type Account struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Type          AccountType     `json:"type"`
	AccountNumber string          `json:"account_number"`
	BankID        int64           `json:"bank_id"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Status        AccountStatus   `json:"status"`
}

// BankTransaction is the append-only log row written once per successful transfer.
// Amount and Currency are the sender side of the movement.
type BankTransaction struct {
	ID                int64           `json:"id"`
	SenderBankName    string          `json:"sender_bank_name"`
	SenderAccountID   int64           `json:"sender_account_id"`
	ReceiverBankName  string          `json:"receiver_bank_name"`
	ReceiverAccountID int64           `json:"receiver_account_id"`
	Currency          string          `json:"currency"`
	Amount            decimal.Decimal `json:"amount"`
	Datetime          time.Time       `json:"datetime"`
}

// NewBank, NewUser and NewAccount are unvalidated inputs for the bulk insert operations.
type NewBank struct {
	Name string
}

type NewUser struct {
	FullName string
	BirthDay *time.Time
	Accounts string
}

type NewAccount struct {
	UserID        int64
	Type          string
	AccountNumber string
	BankID        int64
	Currency      string
	Amount        decimal.Decimal
	Status        string
}

// TransferRequest is what a caller asks the transfer engine to do.
// Datetime is an optional ISO-8601 timestamp; empty means now.
type TransferRequest struct {
	SenderAccountID   int64
	ReceiverAccountID int64
	Amount            decimal.Decimal
	Currency          string
	Datetime          string
}

// TransferParties is the pre-lock snapshot the engine uses to pick a rate.
type TransferParties struct {
	SenderBalance    decimal.Decimal
	SenderCurrency   string
	ReceiverCurrency string
}

// TransferParams is a fully resolved transfer ready to be applied by the store.
type TransferParams struct {
	SenderAccountID   int64
	ReceiverAccountID int64
	Amount            decimal.Decimal
	Converted         decimal.Decimal
	Currency          string
	Datetime          time.Time
}

type TransferReceipt struct {
	Transaction BankTransaction `json:"transaction"`
	Rate        decimal.Decimal `json:"rate"`
	Converted   decimal.Decimal `json:"converted_amount"`
}

func (r TransferReceipt) Message() string {
	return fmt.Sprintf("Transferred %s %s at rate %s",
		r.Transaction.Amount.String(), r.Transaction.Currency, r.Rate.StringFixed(2))
}

// Report rows.

type Debtor struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
}

type BankCapital struct {
	BankName string          `json:"bank_name"`
	Total    decimal.Decimal `json:"total"`
}

type OldestClient struct {
	BankName string    `json:"bank_name"`
	BirthDay time.Time `json:"birth_day"`
}

type UniqueSenders struct {
	BankName string `json:"bank_name"`
	Senders  int64  `json:"senders"`
}

type Discount struct {
	UserID  int64 `json:"user_id"`
	Percent int   `json:"percent"`
}

// CleanupReport counts rows removed by the incomplete-row sweep.
type CleanupReport struct {
	Accounts int64 `json:"accounts"`
	Users    int64 `json:"users"`
}
