package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

func main() {
	var (
		baseURL  = flag.String("base-url", getenv("BASE_URL", "http://localhost:8083"), "booking-service base url")
		business = flag.String("business-id", getenv("BUSINESS_ID", "1"), "business to book")
		service  = flag.String("service-id", getenv("SERVICE_ID", "s1"), "service offered by the business")
		at       = flag.String("at", getenv("SCHEDULED_AT", ""), "slot start, RFC3339 (default: tomorrow 10:00 local)")
		n        = flag.Int("n", 50, "concurrent reservations")
	)
	flag.Parse()

	if *n <= 0 {
		fatal("n must be positive")
	}
	slot := strings.TrimSpace(*at)
	if slot == "" {
		y, m, d := time.Now().AddDate(0, 0, 1).Date()
		slot = time.Date(y, m, d, 10, 0, 0, 0, time.Local).Format(time.RFC3339)
	} else if _, err := time.Parse(time.RFC3339, slot); err != nil {
		fatal("invalid -at: " + err.Error())
	}

	url := strings.TrimRight(*baseURL, "/") + "/api/v1/appointments"
	client := &http.Client{Timeout: 10 * time.Second}

	var (
		mu     sync.Mutex
		counts = map[int]int{}
		errs   int
		wg     sync.WaitGroup
	)
	start := make(chan struct{})
	for i := 0; i < *n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]string{
				"user_id":      fmt.Sprintf("race-%d", i),
				"business_id":  *business,
				"service_id":   *service,
				"scheduled_at": slot,
			})
			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				fatal(err.Error())
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Request-Id", uuid.NewString())

			<-start
			resp, err := client.Do(req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs++
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			counts[resp.StatusCode]++
		}(i)
	}
	close(start)
	wg.Wait()

	codes := make([]int, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	fmt.Printf("slot=%s business=%s requests=%d\n", slot, *business, *n)
	for _, c := range codes {
		fmt.Printf("status=%d count=%d\n", c, counts[c])
	}
	if errs > 0 {
		fmt.Printf("transport_errors=%d\n", errs)
	}
	if counts[http.StatusCreated] != 1 {
		fmt.Fprintf(os.Stderr, "expected exactly one 201, got %d\n", counts[http.StatusCreated])
		os.Exit(2)
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
