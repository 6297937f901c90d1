package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

func cryptoRandIntn(max int) int {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

type OrderRequest struct {
	RetailerID string `json:"retailer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

// Seeded shops and catalog; matches internal/database.Seed so generated
// orders always resolve.
var (
	retailerIDs = []string{
		"R001", "R002", "R003", "R004", "R005",
		"R006", "R007", "R008", "R009", "R010",
	}
	productIDs = []string{"P001", "P002", "P003", "P004", "P005"}
)

func main() {
	defaultURL := os.Getenv("API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080/api/orders"
	}

	var (
		apiURL   = flag.String("url", defaultURL, "API endpoint URL")
		count    = flag.Int("count", 0, "Number of orders to generate (0 = unlimited)")
		rps      = flag.Float64("rps", 1, "Requests per second")
		duration = flag.Duration("duration", 0, "Duration to run (0 = until count reached or forever)")
		workers  = flag.Int("workers", 5, "Number of concurrent workers")
	)
	flag.Parse()

	if *count == 0 && *duration == 0 {
		slog.Error("must specify either --count or --duration")
		os.Exit(1)
	}

	slog.Info("starting load generator",
		slog.String("url", *apiURL),
		slog.Int("count", *count),
		slog.Float64("rps", *rps),
		slog.Duration("duration", *duration),
		slog.Int("workers", *workers),
	)

	var (
		successCount int64
		failureCount int64
		totalCount   int64
		startTime    = time.Now()
		stopCh       = make(chan struct{})
		orderCh      = make(chan OrderRequest, *workers*2)
		wg           sync.WaitGroup
	)

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{Timeout: 30 * time.Second}

			for order := range orderCh {
				if err := submitOrder(context.Background(), client, *apiURL, order); err != nil {
					atomic.AddInt64(&failureCount, 1)
					slog.Error("order failed",
						slog.Int("worker", workerID),
						slog.String("retailer_id", order.RetailerID),
						slog.String("error", err.Error()),
					)
				} else {
					atomic.AddInt64(&successCount, 1)
					slog.Debug("order submitted",
						slog.Int("worker", workerID),
						slog.String("retailer_id", order.RetailerID),
					)
				}
			}
		}(i)
	}

	if *duration > 0 {
		go func() {
			time.Sleep(*duration)
			close(stopCh)
		}()
	}

	interval := time.Duration(float64(time.Second) / *rps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			goto done
		case <-ticker.C:
			if *count > 0 && atomic.LoadInt64(&totalCount) >= int64(*count) {
				goto done
			}

			atomic.AddInt64(&totalCount, 1)
			orderCh <- generateOrder()
		}
	}

done:
	close(orderCh)
	wg.Wait()

	elapsed := time.Since(startTime)
	success := atomic.LoadInt64(&successCount)
	failure := atomic.LoadInt64(&failureCount)
	total := success + failure

	slog.Info("load generation complete",
		slog.Int64("total", total),
		slog.Int64("success", success),
		slog.Int64("failure", failure),
		slog.Float64("success_rate", float64(success)/float64(total)*100),
		slog.Duration("elapsed", elapsed),
		slog.Float64("actual_rps", float64(total)/elapsed.Seconds()),
	)
}

func generateOrder() OrderRequest {
	return OrderRequest{
		RetailerID: retailerIDs[cryptoRandIntn(len(retailerIDs))],
		ProductID:  productIDs[cryptoRandIntn(len(productIDs))],
		// 10-19 units, matching typical shop restocks; a burst of these
		// from nearby shops pushes a pool over the wholesale threshold.
		Quantity: 10 + cryptoRandIntn(10),
	}
}

func submitOrder(ctx context.Context, client *http.Client, url string, order OrderRequest) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
