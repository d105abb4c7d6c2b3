package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

// Postgres SQLSTATE codes the store reports with a readable message.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

type Store struct {
	db  *pgxpool.Pool
	log zerolog.Logger
	now func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewStore connects to Postgres and verifies the connection.
func NewStore(ctx context.Context, connString string, log zerolog.Logger) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return New(pool, log), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, log zerolog.Logger) *Store {
	return &Store{
		db:  pool,
		log: log.With().Str("component", "store").Logger(),
		now: time.Now,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// withTx runs fn inside one transaction: commit on success, rollback on any error,
// connection released on every path. Domain errors from fn pass through wrapped with
// op; anything else is turned into a *domain.StorageError.
func (s *Store) withTx(ctx context.Context, op string, fn func(pgx.Tx) error) error {
	return s.withTxOptions(ctx, op, pgx.TxOptions{}, fn)
}

func (s *Store) withReadTx(ctx context.Context, op string, fn func(pgx.Tx) error) error {
	return s.withTxOptions(ctx, op, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (s *Store) withTxOptions(ctx context.Context, op string, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return s.fail(op, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return s.fail(op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return s.fail(op, err)
	}
	return nil
}

func (s *Store) fail(op string, err error) error {
	if isDomainError(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Error().Err(err).Str("op", op).Msg("Database error")
	return &domain.StorageError{Op: op, Message: describe(err)}
}

func isDomainError(err error) bool {
	if domain.IsFormatError(err) || domain.IsStorageError(err) {
		return true
	}
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInsufficientFunds,
		domain.ErrSameAccount,
		domain.ErrInvalidAmount,
		domain.ErrUserHasAccounts,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func describe(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Sprintf("duplicate value violates %s", pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Sprintf("referenced row missing or still in use (%s)", pgErr.ConstraintName)
		case codeNotNullViolation:
			return fmt.Sprintf("missing required field %s", pgErr.ColumnName)
		case codeCheckViolation:
			return fmt.Sprintf("value rejected by %s", pgErr.ConstraintName)
		case codeSerializationFailure, codeDeadlockDetected:
			return "concurrent update, retry the operation"
		}
		return pgErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "operation cancelled: " + err.Error()
	}
	return err.Error()
}
