package wsqbench

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nsqlite/wsq/internal/log"
	"github.com/nsqlite/wsq/internal/util/numutil"
	"github.com/nsqlite/wsq/internal/version"
	"github.com/nsqlite/wsq/internal/wsq"
	"github.com/nsqlite/wsq/internal/wsqbench/benchbar"
	"github.com/nsqlite/wsq/internal/wsqbench/config"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

// OpsPerSecond returns reads plus writes per second.
func (r benchmarkResult) OpsPerSecond() int {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return int(float64(r.TotalReads+r.TotalWrites) / secs)
}

type benchmark struct {
	name string
	run  func(*runner, target) (benchmarkResult, error)
}

var benchmarks = []benchmark{
	{name: "Simple", run: runBenchmarkSimple},
	{name: "Many", run: runBenchmarkMany},
	{name: "Large", run: runBenchmarkLarge},
}

// runner holds what every benchmark needs besides its target.
type runner struct {
	ctx    context.Context
	conf   config.Config
	logger log.Logger
	barOut io.Writer
}

func (r *runner) newBar(description string, maxItems int) *benchbar.Bar {
	return benchbar.NewBar(r.barOut, description, maxItems)
}

// Run executes the benchmarks against the wsq binding and mattn/go-sqlite3
// and prints the results.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, logFile, err := log.NewFileLogger(conf.LogFile, conf.Debug)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	fmt.Println(version.BenchVersion())
	fmt.Println(version.EngineLine(wsq.LibVersion(), wsq.SourceID()))

	tmpDir, err := os.MkdirTemp(conf.Dir, "wsqbench_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	r := &runner{ctx: ctx, conf: conf, logger: logger, barOut: os.Stderr}

	wsqTgt, err := newWsqTarget(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening wsq db: %w", err)
	}
	defer wsqTgt.Close()

	mattnTgt, err := newMattnTarget(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening mattn/go-sqlite3 db: %w", err)
	}
	defer mattnTgt.Close()

	all := map[string][]benchmarkResult{}
	targets := []target{wsqTgt, mattnTgt}
	for _, tgt := range targets {
		fmt.Printf("\n--- Benchmarks for %s ---\n", tgt.Name())
		results, err := r.runBenchmarks(tgt)
		if err != nil {
			return fmt.Errorf("error benchmarking %s: %w", tgt.Name(), err)
		}
		fmt.Println(renderResults(results))
		all[tgt.Name()] = results
	}

	fmt.Println("\n--- Comparison ---")
	fmt.Println(renderComparison(all[wsqTgt.Name()], all[mattnTgt.Name()]))
	return nil
}

// runBenchmarks executes all benchmarks against t, and returns results.
//
// It recreates the schema before each benchmark.
func (r *runner) runBenchmarks(t target) ([]benchmarkResult, error) {
	var results []benchmarkResult

	for _, bench := range benchmarks {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		if err := recreateSchema(t); err != nil {
			return nil, fmt.Errorf("error recreating schema: %w", err)
		}

		res, err := bench.run(r, t)
		if err != nil {
			r.logger.ErrorNs("wsqbench", "benchmark failed", log.KV{
				"target":    t.Name(),
				"benchmark": bench.name,
				"error":     err.Error(),
			})
			return nil, fmt.Errorf("%s: %w", bench.name, err)
		}

		r.logger.InfoNs("wsqbench", "benchmark finished", log.KV{
			"target":    t.Name(),
			"benchmark": res.Name,
			"reads":     res.TotalReads,
			"writes":    res.TotalWrites,
			"duration":  res.Duration.String(),
		})
		results = append(results, res)
	}

	return results, nil
}

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	return tw
}

func renderResults(results []benchmarkResult) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration", "Ops/s"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.IntWithCommas(int(r.TotalReads)),
			numutil.IntWithCommas(int(r.TotalWrites)),
			r.Duration.Round(time.Millisecond),
			numutil.IntWithCommas(r.OpsPerSecond()),
		})
	}

	return tw.Render()
}

// renderComparison pairs the results of both targets by benchmark name.
func renderComparison(wsqResults, mattnResults []benchmarkResult) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Name", "wsq", "mattn/go-sqlite3", "wsq / mattn"})

	mattnByName := make(map[string]benchmarkResult, len(mattnResults))
	for _, r := range mattnResults {
		mattnByName[r.Name] = r
	}

	for _, w := range wsqResults {
		m, ok := mattnByName[w.Name]
		if !ok {
			continue
		}

		ratio := "-"
		if m.Duration > 0 {
			ratio = fmt.Sprintf("%.2fx", w.Duration.Seconds()/m.Duration.Seconds())
		}
		tw.AppendRow(table.Row{
			w.Name,
			w.Duration.Round(time.Millisecond),
			m.Duration.Round(time.Millisecond),
			ratio,
		})
	}

	return tw.Render()
}
