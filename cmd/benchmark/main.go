package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/bankledger/internal/logger"
	"github.com/punchamoorthee/bankledger/internal/models"
)

// Config holds the benchmark settings
var (
	targetURL     string
	concurrency   int
	duration      time.Duration
	workload      string
	totalAccounts int
	amount        string
	currency      string
)

// Metrics
var (
	totalRequests uint64
	success201    uint64 // Transferred
	fail404       uint64 // Unknown account
	fail422       uint64 // Insufficient funds or invalid input
	failOther     uint64
)

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "API Base URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "uniform", "Workload type: uniform | hotspot")
	flag.IntVar(&totalAccounts, "accounts", 100, "Number of seeded accounts (IDs 1..N)")
	flag.StringVar(&amount, "amount", "1", "Amount per transfer")
	flag.StringVar(&currency, "currency", "USD", "Currency of every transfer")
}

func main() {
	flag.Parse()
	log := logger.New(os.Getenv("LOG_LEVEL"))

	value, err := decimal.NewFromString(amount)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid amount")
	}

	log.Info().
		Str("workload", workload).
		Int("workers", concurrency).
		Dur("duration", duration).
		Msg("Starting Benchmark")

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go worker(&wg, start, value, log)
	}

	wg.Wait()
	printResults(time.Since(start), log)
}

func worker(wg *sync.WaitGroup, start time.Time, value decimal.Decimal, log zerolog.Logger) {
	defer wg.Done()
	client := &http.Client{Timeout: 5 * time.Second}

	for time.Since(start) < duration {
		from, to := generateAccounts()

		body, err := json.Marshal(models.TransferRequest{
			SenderAccountID:   from,
			ReceiverAccountID: to,
			Amount:            value,
			Currency:          currency,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Encoding request failed")
		}

		req, _ := http.NewRequest(http.MethodPost, targetURL+"/api/v1/transfers", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			atomic.AddUint64(&failOther, 1)
			log.Debug().Err(err).Msg("Request failed")
			continue
		}

		atomic.AddUint64(&totalRequests, 1)
		switch resp.StatusCode {
		case http.StatusCreated:
			atomic.AddUint64(&success201, 1)
		case http.StatusNotFound:
			atomic.AddUint64(&fail404, 1)
		case http.StatusUnprocessableEntity:
			atomic.AddUint64(&fail422, 1)
		default:
			atomic.AddUint64(&failOther, 1)
		}
		resp.Body.Close()
	}
}

func generateAccounts() (int64, int64) {
	if workload == "hotspot" {
		// Hotspot: 90% of traffic goes to Account 1 & 2
		if rand.Float32() < 0.90 {
			if rand.Float32() < 0.5 {
				return 1, 2
			}
			return 2, 1
		}
	}

	// Uniform Random
	a := rand.IntN(totalAccounts) + 1
	b := rand.IntN(totalAccounts) + 1
	for a == b {
		b = rand.IntN(totalAccounts) + 1
	}
	return int64(a), int64(b)
}

func printResults(d time.Duration, log zerolog.Logger) {
	total := atomic.LoadUint64(&totalRequests)
	s201 := atomic.LoadUint64(&success201)
	f404 := atomic.LoadUint64(&fail404)
	f422 := atomic.LoadUint64(&fail422)
	fErr := atomic.LoadUint64(&failOther)

	var rejectRate float64
	if total > 0 {
		rejectRate = float64(f422) / float64(total) * 100
	}

	results := map[string]any{
		"workload":          workload,
		"duration_sec":      d.Seconds(),
		"total_requests":    total,
		"throughput_tps":    float64(total) / d.Seconds(),
		"transferred":       s201,
		"unknown_account":   f404,
		"rejected":          f422,
		"rejected_rate_pct": rejectRate,
		"errors":            fErr,
	}

	// Print JSON for the python plotter to consume
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	// Also save to file
	filename := fmt.Sprintf("results_%s.json", workload)
	file, err := os.Create(filename)
	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("Unable to save results")
		return
	}
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
