package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/purkka/radixsort/ingestor"
	"github.com/purkka/radixsort/intio"
	"github.com/purkka/radixsort/output"
	"github.com/purkka/radixsort/testutil"
	"github.com/purkka/radixsort/vecgen"

	v2 "github.com/elastic/go-lumber/client/v2"
)

// runApp executes the command line with args, feeding stdin and capturing stdout
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	app := NewApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"radixsort"}, args...))
	return out.String(), err
}

func TestParseDate(t *testing.T) {
	got := parseDate("2025-01-02T03:04:05Z")
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate = %v, want %v", got, want)
	}

	before := time.Now()
	if fallback := parseDate(""); fallback.Before(before) {
		t.Errorf("invalid date should fall back to now, got %v", fallback)
	}
}

func TestValidatePlotPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty", "", false},
		{"current dir", "chart.html", false},
		{"existing dir", filepath.Join(t.TempDir(), "chart.html"), false},
		{"missing dir", filepath.Join(t.TempDir(), "missing", "chart.html"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePlotPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePlotPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateInputFileExists(t *testing.T) {
	existing := testutil.WriteIntsFile(t, []int32{1}, " ")

	for _, path := range []string{"", "-", existing} {
		if err := validateInputFileExists(path); err != nil {
			t.Errorf("validateInputFileExists(%q) = %v", path, err)
		}
	}
	if err := validateInputFileExists(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestSortCommandStdin(t *testing.T) {
	out, err := runApp(t, "2 3 1 5 4", "sort")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if out != "1 2 3 4 5\n" {
		t.Errorf("sort output = %q, want %q", out, "1 2 3 4 5\n")
	}
}

func TestSortCommandFiles(t *testing.T) {
	input := testutil.WriteIntsFile(t, []int32{-10, 8, 0, -11, 2147483647, -2147483648}, ",")
	dest := testutil.TempFilePath(t, "sorted_*.txt")

	out, err := runApp(t, "", "sort", "--input", input, "--output", dest, "--separator", ",", "--check")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "-2147483648,-11,-10,0,8,2147483647\n"
	if string(data) != want {
		t.Errorf("sorted file = %q, want %q", string(data), want)
	}
}

func TestSortCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"missing input file", "", []string{"sort", "--input", "/nonexistent/ints.txt"}},
		{"invalid integer", "1 two 3", []string{"sort"}},
		{"out of range", "4294967296", []string{"sort"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, tt.stdin, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSortCommandEmptyInput(t *testing.T) {
	out, err := runApp(t, "", "sort")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output for empty input, got %q", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	out, err := runApp(t, "", "generate", "--exponent", "2", "--seed", "7")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	values, err := intio.ParseInts(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseInts: %v", err)
	}
	if len(values) != 100 {
		t.Fatalf("expected 100 values, got %d", len(values))
	}

	want, err := vecgen.New(7).Vector(2)
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("value %d = %d, want %d (same seed must reproduce)", i, values[i], want[i])
		}
	}

	if strings.Count(out, "\n") != 100 {
		t.Errorf("expected one value per line, got %d lines", strings.Count(out, "\n"))
	}
}

func TestGenerateCommandErrors(t *testing.T) {
	if _, err := runApp(t, "", "generate"); err == nil {
		t.Error("expected error when --exponent is missing")
	}
	if _, err := runApp(t, "", "generate", "--exponent", "10"); err == nil {
		t.Error("expected error for exponent above the maximum")
	}
}

func TestVerifyCommand(t *testing.T) {
	out, err := runApp(t, "2 3 1 5 4 -7", "verify", "--compact")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	var doc output.JSONOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if doc.Metadata.AnalysisType != "verify" {
		t.Errorf("analysis type = %q", doc.Metadata.AnalysisType)
	}
	if doc.Verification == nil {
		t.Fatal("missing verification section")
	}
	r := doc.Verification.Report
	if r.Length != 6 || !r.Sorted || !r.Permutation || !r.MatchesReference || r.FirstMismatch != -1 {
		t.Errorf("unexpected report %+v", r)
	}
	if len(doc.Errors) != 0 {
		t.Errorf("unexpected errors: %+v", doc.Errors)
	}
}

func TestVerifyCommandPlain(t *testing.T) {
	out, err := runApp(t, "3,2,1", "verify", "--plain")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, output.Banner) {
		t.Error("plain output should start with the banner")
	}
	if !strings.Contains(out, "Ascending:       yes") {
		t.Errorf("plain output missing verification lines:\n%s", out)
	}
}

func TestBenchCommandFlags(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "bench.html")
	out, err := runApp(t, "", "bench", "--from", "0", "--to", "2", "--samples", "1", "--plotPath", plot, "--compact")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}

	var doc output.JSONOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if doc.Benchmark == nil {
		t.Fatal("missing benchmark section")
	}
	if len(doc.Benchmark.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(doc.Benchmark.Results))
	}
	for i, r := range doc.Benchmark.Results {
		if r.Exponent != uint32(i) {
			t.Errorf("result %d has exponent %d", i, r.Exponent)
		}
		if !r.Verified {
			t.Errorf("result %d not verified", i)
		}
	}
	if doc.Benchmark.Parameters.Seed != 42 {
		t.Errorf("default seed = %d, want 42", doc.Benchmark.Parameters.Seed)
	}

	if _, err := os.Stat(plot); err != nil {
		t.Errorf("expected chart at %s: %v", plot, err)
	}
}

func TestBenchCommandConfig(t *testing.T) {
	cfgPath := testutil.WriteFile(t, "bench_*.toml", `
[bench]
from = 1
to = 1
samples = 1
seed = 3

[output]
compact = true

[extra]
unused = "x"
`)

	out, err := runApp(t, "", "bench", "--config", cfgPath)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}

	var doc output.JSONOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if doc.Benchmark == nil || len(doc.Benchmark.Results) != 1 {
		t.Fatalf("expected one result, got %+v", doc.Benchmark)
	}
	if doc.Benchmark.Parameters.Seed != 3 {
		t.Errorf("seed = %d, want 3", doc.Benchmark.Parameters.Seed)
	}
	if len(doc.Warnings) == 0 {
		t.Error("expected a warning for the unknown configuration key")
	}
}

func TestBenchCommandErrors(t *testing.T) {
	cfgPath := testutil.WriteFile(t, "bench_*.toml", "[bench]\nfrom = 0\nto = 1\n")

	tests := []struct {
		name string
		args []string
	}{
		{"config with tuning flag", []string{"bench", "--config", cfgPath, "--from", "1"}},
		{"missing config", []string{"bench", "--config", "/nonexistent/bench.toml"}},
		{"from after to", []string{"bench", "--from", "3", "--to", "1"}},
		{"exponent too large", []string{"bench", "--to", "12"}},
		{"zero samples", []string{"bench", "--samples", "0"}},
		{"missing plot dir", []string{"bench", "--plotPath", "/nonexistent/dir/chart.html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestServeCommandValidation(t *testing.T) {
	if _, err := runApp(t, "", "serve", "--port", "notaport"); err == nil {
		t.Error("expected error for invalid port")
	}
	if _, err := runApp(t, "", "serve", "--readTimeout", "0s"); err == nil {
		t.Error("expected error for zero read timeout")
	}
}

// lockedBuffer lets the test read what serveLoop writes from another goroutine
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeLoop(t *testing.T) {
	ing, err := ingestor.NewTCPIngestor("127.0.0.1:0", 5*time.Second)
	if err != nil {
		t.Fatalf("NewTCPIngestor: %v", err)
	}
	if err := ing.Accept(); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	var sink lockedBuffer
	type loopResult struct {
		processed int
		err       error
	}
	done := make(chan loopResult, 1)
	go func() {
		processed, err := serveLoop(ing, &sink)
		done <- loopResult{processed, err}
	}()

	client, err := v2.SyncDial(ing.Addr().String(), v2.Timeout(5*time.Second))
	if err != nil {
		ing.Close()
		t.Fatalf("SyncDial: %v", err)
	}
	events := []interface{}{
		map[string]interface{}{"id": "a", "values": []int{3, 1, 2}},
		map[string]interface{}{"id": "b", "values": []int{}},
	}
	if _, err := client.Send(events); err != nil {
		t.Fatalf("Send: %v", err)
	}
	client.Close()

	want := `{"id":"a","count":3,"values":[1,2,3]}` + "\n" + `{"id":"b","count":0,"values":[]}` + "\n"
	deadline := time.Now().Add(5 * time.Second)
	for sink.String() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := sink.String(); got != want {
		t.Errorf("sink = %q, want %q", got, want)
	}

	ing.Close()
	select {
	case res := <-done:
		if res.err != nil {
			t.Errorf("serveLoop: %v", res.err)
		}
		if res.processed != 2 {
			t.Errorf("processed = %d, want 2", res.processed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serveLoop did not stop after Close")
	}
}
