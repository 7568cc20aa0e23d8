package wsqbench

import (
	"fmt"
	"strings"
	"time"
)

// runBenchmarkLarge inserts X users with Y bytes of content and then queries
// all of them in a single query.
func runBenchmarkLarge(r *runner, t target) (benchmarkResult, error) {
	start := time.Now()

	email := strings.Repeat("Y", r.conf.LargeBytes)
	writes, err := r.insertUsers(t, r.conf.LargeRows, func(int) string {
		return email
	})
	if err != nil {
		return benchmarkResult{}, err
	}

	bar := r.newBar("Reading large users", 1)
	reads, err := t.CountRows(selectUsers)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}
	bar.Inc()
	bar.Finish()

	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  reads,
		TotalWrites: writes,
	}, nil
}
