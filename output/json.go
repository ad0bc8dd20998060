package output

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/purkka/radixsort/bench"
	"github.com/purkka/radixsort/verify"
	"github.com/purkka/radixsort/version"
)

// JSONOutput represents the complete result document of a command run
type JSONOutput struct {
	Metadata     Metadata      `json:"metadata"`
	Benchmark    *Benchmark    `json:"benchmark,omitempty"`
	Verification *Verification `json:"verification,omitempty"`
	Warnings     []Warning     `json:"warnings"`
	Errors       []Error       `json:"errors"`

	// Mutex for thread-safe warning/error appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the run
type Metadata struct {
	GeneratedAt  time.Time `json:"generated_at"`
	AnalysisType string    `json:"analysis_type"`
	Version      string    `json:"version"`
	DurationMS   int64     `json:"duration_ms"`
}

// Benchmark contains the parameters and per-size results of a benchmark run
type Benchmark struct {
	Parameters BenchParameters `json:"parameters"`
	Results    []BenchResult   `json:"results"`
}

// BenchParameters mirrors bench.Options
type BenchParameters struct {
	From    uint32 `json:"from"`
	To      uint32 `json:"to"`
	Samples int    `json:"samples"`
	Seed    int64  `json:"seed"`
	Verify  bool   `json:"verify"`
}

// BenchResult holds the timings for one vector size
type BenchResult struct {
	Exponent     uint32  `json:"exponent"`
	Size         int     `json:"size"`
	Samples      int     `json:"samples"`
	RadixNS      int64   `json:"radix_ns"`
	ComparisonNS int64   `json:"comparison_ns"`
	Speedup      float64 `json:"speedup"`
	Verified     bool    `json:"verified"`
}

// Verification contains the outcome of checking one sorted sequence
type Verification struct {
	Input  string        `json:"input,omitempty"`
	Report verify.Report `json:"report"`
	SortUS int64         `json:"sort_us"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewJSONOutput creates a new JSONOutput with default metadata
func NewJSONOutput(analysisType string, startTime time.Time) *JSONOutput {
	return &JSONOutput{
		Metadata: Metadata{
			GeneratedAt:  time.Now().UTC(),
			AnalysisType: analysisType,
			Version:      version.Version,
			DurationMS:   time.Since(startTime).Milliseconds(),
		},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// SetBenchmark stores the options and results of a benchmark run
func (j *JSONOutput) SetBenchmark(opts bench.Options, results []bench.Result) {
	b := &Benchmark{
		Parameters: BenchParameters{
			From:    opts.From,
			To:      opts.To,
			Samples: opts.Samples,
			Seed:    opts.Seed,
			Verify:  opts.Verify,
		},
		Results: make([]BenchResult, 0, len(results)),
	}
	for _, r := range results {
		b.Results = append(b.Results, NewBenchResult(r))
	}
	j.Benchmark = b
}

// NewBenchResult converts a harness result into its output form
func NewBenchResult(r bench.Result) BenchResult {
	return BenchResult{
		Exponent:     r.Exponent,
		Size:         r.Size,
		Samples:      r.Samples,
		RadixNS:      r.RadixNS,
		ComparisonNS: r.ComparisonNS,
		Speedup:      r.Speedup,
		Verified:     r.Verified,
	}
}

// ToJSON converts the output to pretty-printed JSON
func (j *JSONOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

// ToCompactJSON converts the output to compact JSON
func (j *JSONOutput) ToCompactJSON() ([]byte, error) {
	return json.Marshal(j)
}

// AddWarning adds a warning to the output (thread-safe)
func (j *JSONOutput) AddWarning(warningType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output (thread-safe)
func (j *JSONOutput) AddError(errorType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// UpdateDuration updates the duration in metadata
func (j *JSONOutput) UpdateDuration(startTime time.Time) {
	j.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}
