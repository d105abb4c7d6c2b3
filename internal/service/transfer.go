package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/punchamoorthee/bankledger/internal/domain"
	"github.com/punchamoorthee/bankledger/internal/validate"
)

var transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ledger_transfers_total",
	Help: "Transfers processed, labeled by outcome",
}, []string{"outcome"})

type TransferService struct {
	store TransferStore
	rates RateResolver
	clock Clock
	log   zerolog.Logger
}

func NewTransferService(store TransferStore, rates RateResolver, log zerolog.Logger) *TransferService {
	return NewTransferServiceWithClock(store, rates, systemClock{}, log)
}

func NewTransferServiceWithClock(store TransferStore, rates RateResolver, clock Clock, log zerolog.Logger) *TransferService {
	return &TransferService{
		store: store,
		rates: rates,
		clock: clock,
		log:   log.With().Str("component", "transfer").Logger(),
	}
}

// Transfer moves req.Amount out of the sender account and credits the receiver with
// the amount converted into the receiver's currency. The rate is resolved before the
// store takes any lock.
func (s *TransferService) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferReceipt, error) {
	receipt, err := s.transfer(ctx, req)
	transfersTotal.WithLabelValues(outcome(err)).Inc()

	if err != nil {
		s.log.Info().
			Err(err).
			Int64("sender_account_id", req.SenderAccountID).
			Int64("receiver_account_id", req.ReceiverAccountID).
			Str("amount", req.Amount.String()).
			Msg("Transfer rejected")
		return domain.TransferReceipt{}, err
	}

	s.log.Info().
		Int64("transaction_id", receipt.Transaction.ID).
		Int64("sender_account_id", req.SenderAccountID).
		Int64("receiver_account_id", req.ReceiverAccountID).
		Str("amount", receipt.Transaction.Amount.String()).
		Str("currency", receipt.Transaction.Currency).
		Str("rate", receipt.Rate.String()).
		Msg("Transfer completed")
	return receipt, nil
}

func (s *TransferService) transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferReceipt, error) {
	if !req.Amount.IsPositive() {
		return domain.TransferReceipt{}, domain.ErrInvalidAmount
	}
	if req.SenderAccountID == req.ReceiverAccountID {
		return domain.TransferReceipt{}, domain.ErrSameAccount
	}
	currency, err := validate.Currency(req.Currency)
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	at, err := validate.ParseTimestamp(validate.Datetime(req.Datetime, s.clock.Now()))
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	parties, err := s.store.TransferParties(ctx, req.SenderAccountID, req.ReceiverAccountID)
	if err != nil {
		return domain.TransferReceipt{}, err
	}
	if parties.SenderBalance.LessThan(req.Amount) {
		return domain.TransferReceipt{}, fmt.Errorf("account %d holds %s: %w",
			req.SenderAccountID, parties.SenderBalance, domain.ErrInsufficientFunds)
	}

	rate := s.rates.Rate(ctx, currency, parties.ReceiverCurrency)
	converted := req.Amount.Mul(rate)

	entry, err := s.store.ExecTransfer(ctx, domain.TransferParams{
		SenderAccountID:   req.SenderAccountID,
		ReceiverAccountID: req.ReceiverAccountID,
		Amount:            req.Amount,
		Converted:         converted,
		Currency:          currency,
		Datetime:          at,
	})
	if err != nil {
		return domain.TransferReceipt{}, err
	}

	return domain.TransferReceipt{Transaction: entry, Rate: rate, Converted: converted}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "completed"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case domain.IsStorageError(err):
		return "storage_error"
	default:
		return "invalid"
	}
}
