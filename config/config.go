package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/purkka/radixsort/bench"
	"github.com/purkka/radixsort/vecgen"
)

var HomeDir string = os.Getenv("HOME")
var SortedFile string = filepath.Join(HomeDir, "sorted.jsonl")

type BenchConfig struct {
	From    uint32 `toml:"from"`
	To      uint32 `toml:"to"`
	Samples int    `toml:"samples"`
	Seed    int64  `toml:"seed"`
	Verify  bool   `toml:"verify"`
}

type OutputConfig struct {
	PlotPath string `toml:"plotPath"`
	Compact  bool   `toml:"compact"`
	Plain    bool   `toml:"plain"`
}

type ServeConfig struct {
	Port        string `toml:"port"`
	ReadTimeout string `toml:"readTimeout"`
	Output      string `toml:"output"`

	readTimeout time.Duration
}

type Config struct {
	Bench  *BenchConfig  `toml:"bench"`
	Output *OutputConfig `toml:"output"`
	Serve  *ServeConfig  `toml:"serve"`

	// Keys present in the file that no field consumed, reported as warnings
	Undecoded []string `toml:"-"`
}

// DefaultConfig returns the configuration used when no file (or table) is given
func DefaultConfig() *Config {
	opts := bench.DefaultOptions()
	return &Config{
		Bench: &BenchConfig{
			From:    opts.From,
			To:      opts.To,
			Samples: opts.Samples,
			Seed:    opts.Seed,
			Verify:  opts.Verify,
		},
		Output: &OutputConfig{},
		Serve: &ServeConfig{
			Port:        "5044",
			ReadTimeout: "5s",
			Output:      SortedFile,
			readTimeout: 5 * time.Second,
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	md, err := toml.Decode(string(configData), config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, key := range md.Undecoded() {
		config.Undecoded = append(config.Undecoded, key.String())
	}
	sort.Strings(config.Undecoded)

	if config.Serve.ReadTimeout != "" {
		d, err := time.ParseDuration(config.Serve.ReadTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid readTimeout %q: %w", config.Serve.ReadTimeout, err)
		}
		config.Serve.readTimeout = d
	} else {
		config.Serve.readTimeout = 0
	}

	return config, nil
}

// BenchOptions converts the bench table into harness options
func (c *Config) BenchOptions() bench.Options {
	return bench.Options{
		From:    c.Bench.From,
		To:      c.Bench.To,
		Samples: c.Bench.Samples,
		Seed:    c.Bench.Seed,
		Verify:  c.Bench.Verify,
	}
}

// ReadTimeout returns the parsed serve read timeout
func (c *Config) ReadTimeout() time.Duration {
	return c.Serve.readTimeout
}

// SetReadTimeout sets both the raw and the parsed serve read timeout
func (c *Config) SetReadTimeout(d time.Duration) {
	c.Serve.ReadTimeout = d.String()
	c.Serve.readTimeout = d
}

func (c *Config) ValidateBench() error {
	if c.Bench == nil {
		return fmt.Errorf("bench configuration section is required")
	}

	if c.Bench.To < c.Bench.From {
		return fmt.Errorf("to (%d) must not be smaller than from (%d)", c.Bench.To, c.Bench.From)
	}

	if c.Bench.To > vecgen.MaxExponent {
		return fmt.Errorf("to (%d) exceeds the maximum exponent %d", c.Bench.To, vecgen.MaxExponent)
	}

	if c.Bench.Samples < 1 {
		return fmt.Errorf("samples must be at least 1, got %d", c.Bench.Samples)
	}

	// PlotPath is optional - only the directory has to exist
	if c.Output != nil && c.Output.PlotPath != "" {
		plotDir := filepath.Dir(c.Output.PlotPath)
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}

	return nil
}

func (c *Config) ValidateServe() error {
	if c.Serve == nil {
		return fmt.Errorf("serve configuration section is required")
	}

	if c.Serve.Port == "" {
		return fmt.Errorf("port is required in serve configuration")
	}

	port, err := strconv.Atoi(c.Serve.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Serve.Port)
	}

	if c.Serve.readTimeout <= 0 {
		return fmt.Errorf("readTimeout must be positive, got %q", c.Serve.ReadTimeout)
	}

	if c.Serve.Output == "" {
		return fmt.Errorf("output is required in serve configuration")
	}

	return nil
}
