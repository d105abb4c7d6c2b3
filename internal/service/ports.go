package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks github.com/punchamoorthee/bankledger/internal/service TransferStore,RateResolver,Clock

// TransferStore is the part of the ledger store the engine writes through.
type TransferStore interface {
	TransferParties(ctx context.Context, senderID, receiverID int64) (domain.TransferParties, error)
	ExecTransfer(ctx context.Context, p domain.TransferParams) (domain.BankTransaction, error)
}

type RateResolver interface {
	Rate(ctx context.Context, from, to string) decimal.Decimal
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
