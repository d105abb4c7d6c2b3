package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/bankledger/internal/domain"
	"github.com/punchamoorthee/bankledger/internal/validate"
)

// Response is the canonical envelope for every API reply.
type Response struct {
	Status  domain.ResultStatus `json:"status"`
	Message string              `json:"message,omitempty"`
	Count   int                 `json:"count"`
	Data    any                 `json:"data,omitempty"`
}

func FromResult(r domain.Result, data any) Response {
	return Response{Status: r.Status, Message: r.Message, Count: r.Count, Data: data}
}

type BankPayload struct {
	Name string `json:"name"`
}

type CreateBanksRequest struct {
	Banks []BankPayload `json:"banks"`
}

func (r CreateBanksRequest) ToDomain() []domain.NewBank {
	out := make([]domain.NewBank, 0, len(r.Banks))
	for _, b := range r.Banks {
		out = append(out, domain.NewBank{Name: b.Name})
	}
	return out
}

// UserPayload carries the owner's full name as one string; the ledger splits it.
type UserPayload struct {
	FullName string `json:"full_name"`
	BirthDay string `json:"birth_day,omitempty"`
	Accounts string `json:"accounts,omitempty"`
}

type CreateUsersRequest struct {
	Users []UserPayload `json:"users"`
}

func (r CreateUsersRequest) ToDomain() ([]domain.NewUser, error) {
	out := make([]domain.NewUser, 0, len(r.Users))
	for i, u := range r.Users {
		birthDay, err := parseBirthDay(u.BirthDay)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, domain.NewUser{FullName: u.FullName, BirthDay: birthDay, Accounts: u.Accounts})
	}
	return out, nil
}

// UserPatchRequest mirrors domain.UserPatch: absent keys stay nil and are not touched.
type UserPatchRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	BirthDay *string `json:"birth_day,omitempty"`
	Accounts *string `json:"accounts,omitempty"`
}

func (r UserPatchRequest) ToDomain() (domain.UserPatch, error) {
	patch := domain.UserPatch{
		FullName: r.FullName,
		Name:     r.Name,
		Surname:  r.Surname,
		Accounts: r.Accounts,
	}
	if r.BirthDay != nil {
		birthDay, err := parseBirthDay(*r.BirthDay)
		if err != nil {
			return domain.UserPatch{}, err
		}
		if birthDay == nil {
			return domain.UserPatch{}, &domain.FormatError{Field: "birth_day", Reason: "must not be empty"}
		}
		patch.BirthDay = birthDay
	}
	return patch, nil
}

type AccountPayload struct {
	UserID        int64           `json:"user_id"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"account_number"`
	BankID        int64           `json:"bank_id"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status,omitempty"`
}

type CreateAccountsRequest struct {
	Accounts []AccountPayload `json:"accounts"`
}

func (r CreateAccountsRequest) ToDomain() []domain.NewAccount {
	out := make([]domain.NewAccount, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		out = append(out, domain.NewAccount{
			UserID:        a.UserID,
			Type:          a.Type,
			AccountNumber: a.AccountNumber,
			BankID:        a.BankID,
			Currency:      a.Currency,
			Amount:        a.Amount,
			Status:        a.Status,
		})
	}
	return out
}

// TransferRequest is the payload from the client. Datetime is optional.
type TransferRequest struct {
	SenderAccountID   int64           `json:"sender_account_id"`
	ReceiverAccountID int64           `json:"receiver_account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Datetime          string          `json:"datetime,omitempty"`
}

func (r TransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		SenderAccountID:   r.SenderAccountID,
		ReceiverAccountID: r.ReceiverAccountID,
		Amount:            r.Amount,
		Currency:          r.Currency,
		Datetime:          r.Datetime,
	}
}

func parseBirthDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := validate.ParseTimestamp(raw)
	if err != nil {
		return nil, &domain.FormatError{Field: "birth_day", Value: raw, Reason: "expected an ISO-8601 date"}
	}
	return &t, nil
}
