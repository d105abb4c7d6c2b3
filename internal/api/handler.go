package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/punchamoorthee/bankledger/internal/domain"
	"github.com/punchamoorthee/bankledger/internal/logger"
	"github.com/punchamoorthee/bankledger/internal/models"
)

// Ledger is the subset of the store the HTTP layer drives.
type Ledger interface {
	Ping(ctx context.Context) error

	AddBanks(ctx context.Context, banks ...domain.NewBank) (domain.Result, error)
	AddUsers(ctx context.Context, users ...domain.NewUser) (domain.Result, error)
	ModifyUser(ctx context.Context, userID int64, patch domain.UserPatch) (domain.Result, error)
	DeleteUser(ctx context.Context, userID int64) (domain.Result, error)
	AddAccounts(ctx context.Context, accounts ...domain.NewAccount) (domain.Result, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)

	UsersWithDebts(ctx context.Context) ([]domain.Debtor, error)
	BiggestCapital(ctx context.Context) (domain.BankCapital, error)
	OldestClient(ctx context.Context) (domain.OldestClient, error)
	MostUniqueSenders(ctx context.Context) (domain.UniqueSenders, error)
	LastTransactions(ctx context.Context, userID int64) ([]domain.BankTransaction, error)

	DeleteIncompleteRows(ctx context.Context) (domain.CleanupReport, error)
	AssignRandomDiscounts(ctx context.Context) ([]domain.Discount, error)
}

type Transferer interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransferReceipt, error)
}

type Handler struct {
	ledger  Ledger
	service Transferer
	log     zerolog.Logger
}

func NewHandler(l Ledger, svc Transferer, log zerolog.Logger) *Handler {
	return &Handler{ledger: l, service: svc, log: log}
}

func (h *Handler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.Ping(r.Context()); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, models.Response{
			Status:  domain.ResultFailure,
			Message: "database unreachable",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{Status: domain.ResultSuccess, Message: "ok"})
}

func (h *Handler) CreateBanksHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBanksRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.ledger.AddBanks(r.Context(), req.ToDomain()...)
	h.respondResult(w, r, http.StatusCreated, res, err)
}

func (h *Handler) CreateUsersHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUsersRequest
	if !h.decode(w, r, &req) {
		return
	}
	users, err := req.ToDomain()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.ledger.AddUsers(r.Context(), users...)
	h.respondResult(w, r, http.StatusCreated, res, err)
}

func (h *Handler) ModifyUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req models.UserPatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	patch, err := req.ToDomain()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.ledger.ModifyUser(r.Context(), id, patch)
	h.respondResult(w, r, http.StatusOK, res, err)
}

func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	res, err := h.ledger.DeleteUser(r.Context(), id)
	h.respondResult(w, r, http.StatusOK, res, err)
}

func (h *Handler) UserTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	txs, err := h.ledger.LastTransactions(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{
		Status: domain.ResultSuccess,
		Count:  len(txs),
		Data:   nonNil(txs),
	})
}

func (h *Handler) CreateAccountsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountsRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.ledger.AddAccounts(r.Context(), req.ToDomain()...)
	h.respondResult(w, r, http.StatusCreated, res, err)
}

func (h *Handler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	account, err := h.ledger.GetAccount(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{Status: domain.ResultSuccess, Data: account})
}

func (h *Handler) CreateTransferHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if !h.decode(w, r, &req) {
		return
	}

	receipt, err := h.service.Transfer(r.Context(), req.ToDomain())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/transfers/%d", receipt.Transaction.ID))
	respondWithJSON(w, http.StatusCreated, models.Response{
		Status:  domain.ResultSuccess,
		Message: receipt.Message(),
		Count:   1,
		Data:    receipt,
	})
}

func (h *Handler) DebtorsHandler(w http.ResponseWriter, r *http.Request) {
	debtors, err := h.ledger.UsersWithDebts(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{
		Status: domain.ResultSuccess,
		Count:  len(debtors),
		Data:   nonNil(debtors),
	})
}

func (h *Handler) BiggestCapitalHandler(w http.ResponseWriter, r *http.Request) {
	capital, err := h.ledger.BiggestCapital(r.Context())
	h.respondReport(w, r, capital, err)
}

func (h *Handler) OldestClientHandler(w http.ResponseWriter, r *http.Request) {
	client, err := h.ledger.OldestClient(r.Context())
	h.respondReport(w, r, client, err)
}

func (h *Handler) MostUniqueSendersHandler(w http.ResponseWriter, r *http.Request) {
	senders, err := h.ledger.MostUniqueSenders(r.Context())
	h.respondReport(w, r, senders, err)
}

func (h *Handler) CleanupHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.DeleteIncompleteRows(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{
		Status:  domain.ResultSuccess,
		Message: fmt.Sprintf("Deleted %d accounts and %d users", report.Accounts, report.Users),
		Count:   int(report.Accounts + report.Users),
		Data:    report,
	})
}

func (h *Handler) DiscountsHandler(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.ledger.AssignRandomDiscounts(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{
		Status: domain.ResultSuccess,
		Count:  len(discounts),
		Data:   nonNil(discounts),
	})
}

// Helpers

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithJSON(w, http.StatusBadRequest, models.Response{
			Status:  domain.ResultFailure,
			Message: "Malformed JSON body",
		})
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondWithJSON(w, http.StatusBadRequest, models.Response{
			Status:  domain.ResultFailure,
			Message: "Invalid id in path",
		})
		return 0, false
	}
	return id, true
}

func (h *Handler) respondReport(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.Response{Status: domain.ResultSuccess, Count: 1, Data: data})
}

func (h *Handler) respondResult(w http.ResponseWriter, r *http.Request, code int, res domain.Result, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondWithJSON(w, code, models.FromResult(res, nil))
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		reqLog := logger.FromContext(r.Context(), h.log)
		reqLog.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	respondWithJSON(w, code, models.FromResult(domain.ResultFromError(err), nil))
}

func statusFor(err error) int {
	switch {
	case domain.IsFormatError(err),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserHasAccounts):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// nonNil keeps empty lists as [] on the wire.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
