package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func NewRouter(h *Handler, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID(log), Logger(log), Recovery(log))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthCheckHandler).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(Metrics)

	v1.HandleFunc("/banks", h.CreateBanksHandler).Methods(http.MethodPost)

	v1.HandleFunc("/users", h.CreateUsersHandler).Methods(http.MethodPost)
	v1.HandleFunc("/users/{id}", h.ModifyUserHandler).Methods(http.MethodPatch)
	v1.HandleFunc("/users/{id}", h.DeleteUserHandler).Methods(http.MethodDelete)
	v1.HandleFunc("/users/{id}/transactions", h.UserTransactionsHandler).Methods(http.MethodGet)

	v1.HandleFunc("/accounts", h.CreateAccountsHandler).Methods(http.MethodPost)
	v1.HandleFunc("/accounts/{id}", h.GetAccountHandler).Methods(http.MethodGet)

	v1.HandleFunc("/transfers", h.CreateTransferHandler).Methods(http.MethodPost)

	v1.HandleFunc("/reports/debtors", h.DebtorsHandler).Methods(http.MethodGet)
	v1.HandleFunc("/reports/biggest-capital", h.BiggestCapitalHandler).Methods(http.MethodGet)
	v1.HandleFunc("/reports/oldest-client", h.OldestClientHandler).Methods(http.MethodGet)
	v1.HandleFunc("/reports/most-unique-senders", h.MostUniqueSendersHandler).Methods(http.MethodGet)

	v1.HandleFunc("/maintenance/cleanup", h.CleanupHandler).Methods(http.MethodPost)
	v1.HandleFunc("/discounts", h.DiscountsHandler).Methods(http.MethodPost)

	return r
}
