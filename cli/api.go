package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/purkka/radixsort/bench"
	"github.com/purkka/radixsort/config"
	"github.com/purkka/radixsort/ingestor"
	"github.com/purkka/radixsort/intio"
	"github.com/purkka/radixsort/output"
	"github.com/purkka/radixsort/radix"
	"github.com/purkka/radixsort/tui"
	"github.com/purkka/radixsort/vecgen"
	"github.com/purkka/radixsort/verify"
	cli "github.com/urfave/cli/v2"
)

// ============================================================================
// CONFIGURATION STRUCTS
// ============================================================================

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
}

// ============================================================================
// MAIN ENTRY POINTS
// ============================================================================

// SortValues reads integers from input, sorts them and writes them to dest
func SortValues(c *cli.Context, input, dest, sep string, check bool) error {
	values, err := readValues(c, input)
	if err != nil {
		return err
	}

	sorted := radix.Sort(values)
	if check {
		if err := verify.Check(values, sorted).Err(); err != nil {
			return fmt.Errorf("sorted output failed verification: %w", err)
		}
	}

	return writeValues(c, dest, sorted, sep)
}

// Generate writes 10^exponent random integers drawn from a generator seeded with seed
func Generate(c *cli.Context, exponent uint32, seed int64, dest, sep string) error {
	values, err := vecgen.New(seed).Vector(exponent)
	if err != nil {
		return err
	}
	return writeValues(c, dest, values, sep)
}

// Verify sorts the input and reports the oracle checks. A failed check is
// reported in the output and returned as an error.
func Verify(c *cli.Context, input string, outputConfig OutputConfig) error {
	start := time.Now()
	jsonOutput := output.NewJSONOutput("verify", start)

	values, err := readValues(c, input)
	if err != nil {
		return err
	}

	sortStart := time.Now()
	sorted := radix.Sort(values)
	sortDuration := time.Since(sortStart)

	report := verify.Check(values, sorted)
	jsonOutput.Verification = &output.Verification{
		Input:  input,
		Report: report,
		SortUS: sortDuration.Microseconds(),
	}
	if err := report.Err(); err != nil {
		jsonOutput.AddError("verify", err.Error(), 1)
	}
	jsonOutput.UpdateDuration(start)

	outputResult(c.App.Writer, jsonOutput, outputConfig)
	return report.Err()
}

// BenchFromConfig runs the benchmark harness described by cfg
func BenchFromConfig(c *cli.Context, cfg *config.Config, outputConfig OutputConfig) error {
	opts := cfg.BenchOptions()

	// Route to TUI if requested
	if outputConfig.TUI {
		return tui.NewApp(opts, cfg.Output.PlotPath).Run()
	}

	start := time.Now()
	jsonOutput := output.NewJSONOutput("bench", start)
	for _, key := range cfg.Undecoded {
		jsonOutput.AddWarning("config", fmt.Sprintf("unknown configuration key %q", key), 0)
	}

	results, err := bench.Run(c.Context, opts, nil)
	if err != nil {
		jsonOutput.AddError("bench", err.Error(), 1)
		jsonOutput.UpdateDuration(start)
		outputResult(c.App.Writer, jsonOutput, outputConfig) // Output with errors
		return err
	}
	jsonOutput.SetBenchmark(opts, results)

	for _, r := range results {
		if opts.Verify && !r.Verified {
			jsonOutput.AddError("verify", fmt.Sprintf("radix sort output for 10^%d values failed verification", r.Exponent), 1)
		}
	}

	// Generate the chart if plotPath is provided
	if cfg.Output.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotBenchmark(jsonOutput.Benchmark.Results, cfg.Output.PlotPath); err != nil {
			jsonOutput.AddError("plot", err.Error(), 1)
		} else {
			jsonOutput.AddWarning("info", fmt.Sprintf("Chart generated in %v at %s", time.Since(plotStart), cfg.Output.PlotPath), 0)
		}
	}

	jsonOutput.UpdateDuration(start)
	outputResult(c.App.Writer, jsonOutput, outputConfig)
	return nil
}

// Serve runs the lumberjack ingestor until the listener closes or a signal arrives
func Serve(c *cli.Context, cfg *config.Config) error {
	sink, err := os.OpenFile(cfg.Serve.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer sink.Close()

	ing, err := ingestor.NewTCPIngestor(":"+cfg.Serve.Port, cfg.ReadTimeout())
	if err != nil {
		log.Fatalf("Error creating ingestor: %v", err)
	}

	if err := ing.Accept(); err != nil {
		log.Fatalf("Error accepting connection: %v", err)
	}
	log.Printf("Listening for lumberjack batches on %s, writing to %s", ing.Addr(), cfg.Serve.Output)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	go func() {
		select {
		case <-stop:
			log.Printf("Received shutdown signal...")
		case <-ctx.Done():
		}
		ing.Close()
	}()

	processed, err := serveLoop(ing, sink)
	log.Printf("Ingestor closed after %d batches (%d malformed events skipped)", processed, ing.Skipped())
	return err
}

// serveLoop sorts and writes jobs until the ingestor is closed
func serveLoop(ing *ingestor.TCPIngestor, w io.Writer) (int, error) {
	processed := 0
	for {
		jobs, ok := ing.Next()
		if !ok {
			return processed, nil
		}
		if len(jobs) == 0 {
			continue
		}

		loopStart := time.Now()
		if err := ingestor.Process(jobs, w); err != nil {
			return processed, fmt.Errorf("writing sorted batch: %w", err)
		}
		processed += len(jobs)
		log.Printf("Sorted %d jobs in %v", len(jobs), time.Since(loopStart))
	}
}

// ============================================================================
// INPUT / OUTPUT HELPERS
// ============================================================================

func readValues(c *cli.Context, input string) ([]int32, error) {
	var r io.Reader = c.App.Reader
	if input != "" && input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		r = os.Stdin
	}

	values, err := intio.ParseInts(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return values, nil
}

func writeValues(c *cli.Context, dest string, values []int32, sep string) error {
	if dest == "" {
		return intio.FormatInts(c.App.Writer, values, sep)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := intio.FormatInts(f, values, sep); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return f.Close()
}

// ============================================================================
// OUTPUT FUNCTIONS - Unified output handling
// ============================================================================

// outputResult is the unified output function that handles all output formats
func outputResult(w io.Writer, jsonOutput *output.JSONOutput, outputConfig OutputConfig) {
	if outputConfig.Plain {
		output.WritePlain(w, jsonOutput)
		return
	}

	var jsonBytes []byte
	var err error

	if outputConfig.Compact {
		jsonBytes, err = jsonOutput.ToCompactJSON()
	} else {
		jsonBytes, err = jsonOutput.ToJSON()
	}

	if err != nil {
		fmt.Fprintf(w, `{"error": "failed to marshal JSON output: %v"}`, err)
		return
	}
	fmt.Fprintln(w, string(jsonBytes))
}
