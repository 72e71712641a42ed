// Command seed populates a running ladder instance with generated
// competitors and matches, for demos and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultCompetitors = 8
	defaultMatches     = 100
	defaultTimeout     = 10 * time.Second
	defaultRunTimeout  = 5 * time.Minute
)

var outcomes = []string{"P1", "Draw", "P2"}

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		competitors = flag.Int("competitors", defaultCompetitors, "Number of competitors to register")
		matches     = flag.Int("matches", defaultMatches, "Number of matches to record")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible runs")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	client := &http.Client{Timeout: *timeout}
	rng := rand.New(rand.NewSource(*seed))

	names := make([]string, 0, *competitors)
	for i := 0; i < *competitors; i++ {
		names = append(names, fmt.Sprintf("Player %02d", i+1))
	}

	// Register through the CSV import so re-runs skip already-registered
	// names instead of failing on the conflict.
	var seedBody bytes.Buffer
	sw := csv.NewWriter(&seedBody)
	_ = sw.Write([]string{"name", "rating", "rd", "volatility"})
	for _, name := range names {
		_ = sw.Write([]string{name, "", "", ""})
	}
	sw.Flush()
	if err := postCSV(ctx, client, *baseURL+"/csv/competitors", seedBody.Bytes()); err != nil {
		os.Stderr.WriteString("register competitors: " + err.Error() + "\n")
		return
	}
	fmt.Printf("registered %d competitors\n", len(names))

	// Upload the matches as one CSV batch. Every row carries a generated id,
	// so re-running the tool against the same instance does not duplicate
	// records.
	var csvBody bytes.Buffer
	cw := csv.NewWriter(&csvBody)
	_ = cw.Write([]string{"id", "played_at", "competitor1", "competitor2", "outcome"})
	start := time.Now().Add(-time.Duration(*matches) * time.Minute)
	for i := 0; i < *matches; i++ {
		c1 := rng.Intn(len(names))
		c2 := rng.Intn(len(names) - 1)
		if c2 >= c1 {
			c2++
		}
		_ = cw.Write([]string{
			uuid.New().String(),
			start.Add(time.Duration(i) * time.Minute).UTC().Format(time.RFC3339),
			names[c1],
			names[c2],
			outcomes[rng.Intn(len(outcomes))],
		})
	}
	cw.Flush()

	if err := postCSV(ctx, client, *baseURL+"/csv/matches", csvBody.Bytes()); err != nil {
		os.Stderr.WriteString("upload matches: " + err.Error() + "\n")
		return
	}
	fmt.Printf("uploaded %d matches\n", *matches)

	resp, err := client.Get(*baseURL + "/standings?limit=10")
	if err != nil {
		os.Stderr.WriteString("fetch standings: " + err.Error() + "\n")
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(os.Stdout, resp.Body)
}

func postCSV(ctx context.Context, client *http.Client, url string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, payload)
	}
	return nil
}
