package wsqbench

import (
	"fmt"
	"time"
)

// runBenchmarkMany inserts X users in a single transaction and then query all
// users Y times. This simulates a read-heavy workload.
func runBenchmarkMany(r *runner, t target) (benchmarkResult, error) {
	start := time.Now()

	writes, err := r.insertUsers(t, r.conf.Users, func(idx int) string {
		return fmt.Sprintf("user%d@example.com", idx)
	})
	if err != nil {
		return benchmarkResult{}, err
	}

	bar := r.newBar(
		fmt.Sprintf("Querying all users %d times", r.conf.Queries), r.conf.Queries,
	)

	var reads uint64
	for range r.conf.Queries {
		if err := r.ctx.Err(); err != nil {
			return benchmarkResult{}, err
		}

		count, err := t.CountRows(selectUsers)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
		}

		bar.Inc()
		reads += count
	}
	bar.Finish()

	return benchmarkResult{
		Name:        "Many",
		Duration:    time.Since(start),
		TotalReads:  reads,
		TotalWrites: writes,
	}, nil
}
