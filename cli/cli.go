package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/purkka/radixsort/config"
	"github.com/purkka/radixsort/output"
	"github.com/purkka/radixsort/vecgen"
	"github.com/purkka/radixsort/version"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with tuning flags)",
	}

	// Input/output flags
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "File with integers separated by whitespace or commas ('-' or empty for stdin)",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "File to write to (empty for stdout)",
	}
	separatorFlag = &cli.StringFlag{
		Name:  "separator",
		Usage: "Separator placed between written integers",
		Value: " ",
	}
	checkFlag = &cli.BoolFlag{
		Name:  "check",
		Usage: "Verify the sorted output against a comparison sort before writing it",
		Value: false,
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}

	// Generate-specific flags
	exponentFlag = &cli.UintFlag{
		Name:     "exponent",
		Usage:    fmt.Sprintf("Generate 10^exponent integers (0 to %d)", vecgen.MaxExponent),
		Required: true,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the random generator (defaults to the clock for generate, 42 for bench)",
	}

	// Bench-specific flags
	fromFlag = &cli.UintFlag{
		Name:  "from",
		Usage: "Smallest exponent to benchmark",
		Value: 0,
	}
	toFlag = &cli.UintFlag{
		Name:  "to",
		Usage: "Largest exponent to benchmark",
		Value: 5,
	}
	samplesFlag = &cli.IntFlag{
		Name:  "samples",
		Usage: "Timed iterations per size (the median is reported)",
		Value: 10,
	}
	noVerifyFlag = &cli.BoolFlag{
		Name:  "noVerify",
		Usage: "Skip checking radix sort output against the comparison sort",
		Value: false,
	}
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the chart (e.g., '/path/to/bench.html'). If not provided, no chart will be generated.",
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch TUI (Terminal User Interface) mode",
		Value: false,
	}

	// Serve-specific flags
	portFlag = &cli.StringFlag{
		Name:  "port",
		Usage: "Port to listen on for lumberjack v2 batches",
		Value: "5044",
	}
	readTimeoutFlag = &cli.DurationFlag{
		Name:  "readTimeout",
		Usage: "Read timeout for client connections",
		Value: 5 * time.Second,
	}
	sortedFileFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "JSON lines file the sorted batches are appended to",
		Value: config.SortedFile,
	}
)

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	// Create a map for quick lookup of allowed flags
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	// Check all possible flags
	flagsToCheck := []string{
		"from", "to", "samples", "seed", "noVerify", "plotPath",
		"port", "readTimeout", "output", "compact", "plain", "tui",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validateInputFileExists(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return nil
}

// Command handler functions to reduce deep nesting

// handleSortCommand sorts integers from input and writes them to output
func handleSortCommand(c *cli.Context) error {
	if err := validateInputFileExists(c.String("input")); err != nil {
		return err
	}
	return SortValues(c, c.String("input"), c.String("output"), c.String("separator"), c.Bool("check"))
}

// handleGenerateCommand writes 10^exponent random integers
func handleGenerateCommand(c *cli.Context) error {
	exponent := c.Uint("exponent")
	if exponent > vecgen.MaxExponent {
		return fmt.Errorf("exponent must be between 0 and %d, got %d", vecgen.MaxExponent, exponent)
	}

	seed := time.Now().UnixNano()
	if c.IsSet("seed") {
		seed = c.Int64("seed")
	}

	return Generate(c, uint32(exponent), seed, c.String("output"), c.String("separator"))
}

// handleVerifyCommand sorts input and reports the oracle checks
func handleVerifyCommand(c *cli.Context) error {
	if err := validateInputFileExists(c.String("input")); err != nil {
		return err
	}
	return Verify(c, c.String("input"), OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
	})
}

// handleBenchCommand processes the bench command with proper separation of concerns
func handleBenchCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleBenchConfigMode(c, configPath)
	}
	return handleBenchFlagsMode(c)
}

// handleBenchConfigMode handles bench command when using config file
func handleBenchConfigMode(c *cli.Context, configPath string) error {
	// Validate only allowed flags in config mode
	if err := validateConfigModeFlags(c, []string{"tui", "compact", "plain"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateBench(); err != nil {
		return fmt.Errorf("invalid bench configuration: %w", err)
	}

	outputConfig := OutputConfig{
		Compact: cfg.Output.Compact || c.Bool("compact"),
		Plain:   cfg.Output.Plain || c.Bool("plain"),
		TUI:     c.Bool("tui"),
	}
	return BenchFromConfig(c, cfg, outputConfig)
}

// handleBenchFlagsMode handles bench command when using CLI flags only
func handleBenchFlagsMode(c *cli.Context) error {
	if err := validatePlotPath(c.String("plotPath")); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Bench.From = uint32(c.Uint("from"))
	cfg.Bench.To = uint32(c.Uint("to"))
	cfg.Bench.Samples = c.Int("samples")
	cfg.Bench.Verify = !c.Bool("noVerify")
	if c.IsSet("seed") {
		cfg.Bench.Seed = c.Int64("seed")
	}
	cfg.Output.PlotPath = c.String("plotPath")

	if c.Uint("from") > vecgen.MaxExponent || c.Uint("to") > vecgen.MaxExponent {
		return fmt.Errorf("exponents must be between 0 and %d", vecgen.MaxExponent)
	}
	if err := cfg.ValidateBench(); err != nil {
		return err
	}

	return BenchFromConfig(c, cfg, OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
	})
}

// handleServeCommand processes the serve command
func handleServeCommand(c *cli.Context) error {
	configPath := c.String("config")
	var cfg *config.Config
	if configPath != "" {
		if err := validateConfigModeFlags(c, nil); err != nil {
			return err
		}
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.Serve.Port = c.String("port")
		cfg.Serve.Output = c.String("output")
		cfg.SetReadTimeout(c.Duration("readTimeout"))
	}

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("invalid serve configuration: %w", err)
	}

	return Serve(c, cfg)
}

// App is the command line application used by main
var App = NewApp()

// NewApp builds the command tree. Commands write to the app's Writer and read
// stdin from its Reader.
func NewApp() *cli.App {
	return &cli.App{
		Name:        "radixsort",
		Usage:       "Sort, generate and benchmark signed 32-bit integers with an LSD radix sort",
		Description: output.Banner,
		Version:     version.Version,
		Compiled:    parseDate(version.Date),
		Commands: []*cli.Command{
			{
				Name:  "sort",
				Usage: "Sort integers read from a file or stdin",
				Flags: []cli.Flag{
					inputFlag,
					outputFlag,
					separatorFlag,
					checkFlag,
				},
				Action: handleSortCommand,
			},
			{
				Name:  "generate",
				Usage: "Write 10^exponent pseudo-random integers",
				Flags: []cli.Flag{
					exponentFlag,
					seedFlag,
					outputFlag,
					&cli.StringFlag{
						Name:  "separator",
						Usage: "Separator placed between written integers",
						Value: "\n",
					},
				},
				Action: handleGenerateCommand,
			},
			{
				Name:  "verify",
				Usage: "Sort integers and check the result against a comparison sort",
				Flags: []cli.Flag{
					inputFlag,
					compactFlag,
					plainFlag,
				},
				Action: handleVerifyCommand,
			},
			{
				Name:  "bench",
				Usage: "Benchmark radix sort against the standard sort for 10^from..10^to values",
				Flags: []cli.Flag{
					// Configuration
					configFlag,
					// Bench-specific flags
					fromFlag,
					toFlag,
					samplesFlag,
					seedFlag,
					noVerifyFlag,
					// Output flags
					plotPathFlag,
					compactFlag,
					plainFlag,
					tuiFlag,
				},
				Action: handleBenchCommand,
			},
			{
				Name:  "serve",
				Usage: "Accept lumberjack v2 batches of integers and append each sorted batch to a file",
				Flags: []cli.Flag{
					configFlag,
					portFlag,
					readTimeoutFlag,
					sortedFileFlag,
				},
				Action: handleServeCommand,
			},
		},
	}
}
