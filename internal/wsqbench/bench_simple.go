package wsqbench

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const selectUsers = "SELECT id, created, email, active FROM users ORDER BY id"

// runBenchmarkSimple inserts X users in a single transaction and then
// queries all of them in a single query.
func runBenchmarkSimple(r *runner, t target) (benchmarkResult, error) {
	start := time.Now()

	writes, err := r.insertUsers(t, r.conf.Users, func(int) string {
		return uuid.NewString() + "@example.com"
	})
	if err != nil {
		return benchmarkResult{}, err
	}

	bar := r.newBar("Reading users", 1)
	reads, err := t.CountRows(selectUsers)
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when querying: %w", err)
	}
	bar.Inc()
	bar.Finish()

	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  reads,
		TotalWrites: writes,
	}, nil
}

// insertUsers inserts count users inside one transaction. The email of the
// i-th user is produced by email.
func (r *runner) insertUsers(t target, count int, email func(i int) string) (uint64, error) {
	if err := t.Exec("BEGIN"); err != nil {
		return 0, fmt.Errorf("error when beginning: %w", err)
	}

	bar := r.newBar(fmt.Sprintf("Inserting %d users", count), count)
	var writes uint64
	for idx := range count {
		err := t.Exec(fmt.Sprintf(
			"INSERT INTO users (created, email, active) VALUES (%d, %s, 1)",
			time.Now().Unix(), quote(email(idx)),
		))
		if err != nil {
			_ = t.Exec("ROLLBACK")
			return 0, fmt.Errorf("error when inserting: %w", err)
		}

		bar.Inc()
		writes++
	}

	if err := t.Exec("COMMIT"); err != nil {
		return 0, fmt.Errorf("error when committing: %w", err)
	}
	bar.Finish()

	return writes, nil
}
