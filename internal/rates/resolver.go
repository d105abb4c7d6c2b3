// Package rates resolves currency conversion rates from an external HTTP feed.
// A transfer must never be blocked by the feed, so every failure degrades to a
// configured fallback rate instead of an error.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Query parameter names understood by freecurrencyapi. A provider that is not
// told the base currency answers relative to USD, so these must match the endpoint.
const (
	DefaultBaseParam   = "base_currency"
	DefaultTargetParam = "currencies"
)

var (
	rateLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_rate_lookups_total",
		Help: "Currency rate lookups, labeled by outcome",
	}, []string{"outcome"})

	errMissingRate = errors.New("rate missing from response")
)

type Config struct {
	Endpoint     string
	APIKey       string
	BaseParam    string
	TargetParam  string
	Timeout      time.Duration
	FallbackRate decimal.Decimal
}

type Resolver struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

func NewResolver(cfg Config, log zerolog.Logger) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.BaseParam == "" {
		cfg.BaseParam = DefaultBaseParam
	}
	if cfg.TargetParam == "" {
		cfg.TargetParam = DefaultTargetParam
	}
	if !cfg.FallbackRate.IsPositive() {
		cfg.FallbackRate = decimal.NewFromInt(1)
	}
	return &Resolver{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("component", "rates").Logger(),
	}
}

func (r *Resolver) FallbackRate() decimal.Decimal { return r.cfg.FallbackRate }

// Rate returns how many units of to one unit of from buys. It never fails.
func (r *Resolver) Rate(ctx context.Context, from, to string) decimal.Decimal {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		rateLookups.WithLabelValues("same_currency").Inc()
		return decimal.NewFromInt(1)
	}

	rate, err := r.fetch(ctx, from, to)
	if err != nil {
		rateLookups.WithLabelValues("fallback").Inc()
		r.log.Warn().
			Err(err).
			Str("from", from).
			Str("to", to).
			Str("fallback", r.cfg.FallbackRate.String()).
			Msg("Currency rate lookup failed, using fallback")
		return r.cfg.FallbackRate
	}

	rateLookups.WithLabelValues("ok").Inc()
	return rate
}

func (r *Resolver) fetch(ctx context.Context, from, to string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	u, err := url.Parse(r.cfg.Endpoint)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set(r.cfg.BaseParam, from)
	q.Set(r.cfg.TargetParam, to)
	if r.cfg.APIKey != "" {
		q.Set("apikey", r.cfg.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("requesting rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading body: %w", err)
	}
	return parseRate(body, to)
}

// parseRate accepts {"EUR": 0.85} and the freecurrencyapi shape {"data": {"EUR": 0.85}}.
func parseRate(body []byte, target string) (decimal.Decimal, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return decimal.Zero, fmt.Errorf("decoding body: %w", err)
	}

	raw, ok := top[target]
	if !ok {
		var data map[string]json.RawMessage
		if nested, found := top["data"]; found && json.Unmarshal(nested, &data) == nil {
			raw, ok = data[target]
		}
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", errMissingRate, target)
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return decimal.Zero, fmt.Errorf("rate for %s is not a number: %w", target, err)
	}
	rate, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate for %s: %w", target, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate for %s is not positive: %s", target, rate)
	}
	return rate, nil
}
