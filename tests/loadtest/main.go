package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8765"
	numWorkers   = 50
	testDuration = 10 * time.Second
	maxWaterMl   = 500
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

// sample is one timed request.
type sample struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

// endpointReport accumulates the samples of one endpoint.
type endpointReport struct {
	failures  int
	latencies []time.Duration
}

func (r *endpointReport) quantile(q float64) time.Duration {
	if len(r.latencies) == 0 {
		return 0
	}
	return r.latencies[min(int(float64(len(r.latencies))*q), len(r.latencies)-1)]
}

func (r *endpointReport) mean() time.Duration {
	if len(r.latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, l := range r.latencies {
		sum += l
	}
	return sum / time.Duration(len(r.latencies))
}

func main() {
	fmt.Println("=== Nutriscan Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Logging water (POST /water) ---")
	runPhase(testDuration, func(rng *rand.Rand) sample {
		return doAddWater(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% POST, 50% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) sample {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doAddWater(rng)
		case r < 0.70:
			return doGet("/totals/daily")
		case r < 0.85:
			return doGet("/totals/weekly")
		case r < 0.95:
			return doGet("/progress")
		default:
			return doGet("/session")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (5% POST, 95% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) sample {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doAddWater(rng)
		case r < 0.35:
			return doGet("/totals/daily")
		case r < 0.55:
			return doGet("/meals")
		case r < 0.75:
			return doGet("/water")
		case r < 0.90:
			return doGet("/totals/weekly")
		default:
			return doGet("/stats")
		}
	})
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		if resp, err := httpClient.Get(baseURL + "/health"); err == nil {
			drain(resp)
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

// runPhase keeps numWorkers busy with pick until duration elapses.
func runPhase(duration time.Duration, pick func(rng *rand.Rand) sample) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		reports = make(map[string]*endpointReport)
	)
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			for ctx.Err() == nil {
				s := pick(rng)
				mu.Lock()
				rep, ok := reports[s.endpoint]
				if !ok {
					rep = &endpointReport{}
					reports[s.endpoint] = rep
				}
				rep.latencies = append(rep.latencies, s.latency)
				if s.failed {
					rep.failures++
				}
				mu.Unlock()
			}
		}(rand.New(rand.NewSource(time.Now().UnixNano() + int64(i))))
	}
	wg.Wait()

	printReport(reports, duration)
}

func printReport(reports map[string]*endpointReport, duration time.Duration) {
	rule := "  " + strings.Repeat("-", 88)
	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println(rule)

	var requests, failures int
	endpoints := make([]string, 0, len(reports))
	for ep := range reports {
		endpoints = append(endpoints, ep)
	}
	slices.Sort(endpoints)
	for _, ep := range endpoints {
		rep := reports[ep]
		slices.Sort(rep.latencies)
		requests += len(rep.latencies)
		failures += rep.failures
		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n", ep, len(rep.latencies), rep.failures,
			ms(rep.mean()), ms(rep.quantile(0.50)), ms(rep.quantile(0.95)), ms(rep.quantile(0.99)))
	}

	fmt.Println(rule)
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		requests, failures, 100*float64(failures)/float64(max(requests, 1)), float64(requests)/duration.Seconds())
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func timed(endpoint string, want int, do func() (*http.Response, error)) sample {
	start := time.Now()
	resp, err := do()
	s := sample{endpoint: endpoint, latency: time.Since(start), failed: err != nil}
	if err == nil {
		s.failed = resp.StatusCode != want
		drain(resp)
	}
	return s
}

func doAddWater(rng *rand.Rand) sample {
	data, _ := json.Marshal(map[string]int{"amount": rng.Intn(maxWaterMl) + 1})
	return timed("POST /water", http.StatusCreated, func() (*http.Response, error) {
		return httpClient.Post(baseURL+"/water", "application/json", bytes.NewReader(data))
	})
}

func doGet(path string) sample {
	return timed("GET "+path, http.StatusOK, func() (*http.Response, error) {
		return httpClient.Get(baseURL + path)
	})
}
