package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/purkka/radixsort/bench"
	"github.com/purkka/radixsort/output"
	"github.com/rivo/tview"
)

var columns = []string{"Values", "Radix Sort", "Sort", "Speedup", "Verified"}

// App represents the TUI application
type App struct {
	app       *tview.Application
	banner    *tview.TextView
	table     *tview.Table
	statusBar *tview.TextView

	opts     bench.Options
	plotPath string

	// Shared mutable state protected by mu (accessed from the benchmark goroutine)
	mu      sync.Mutex
	results []bench.Result
	runErr  error

	// Atomic flag for cross-goroutine signaling (no mutex needed)
	benchComplete atomic.Bool
	cancel        context.CancelFunc
}

// NewApp creates a TUI that runs a benchmark with opts. If plotPath is set
// the chart is written there once the run completes.
func NewApp(opts bench.Options, plotPath string) *App {
	a := &App{
		app:      tview.NewApplication(),
		opts:     opts,
		plotPath: plotPath,
	}
	a.setupUI()
	return a
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.banner = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(fmt.Sprintf("[purple::b]%s[white::-]\n[blue::i]sizes 10^%d..10^%d, %d samples, seed %d[white::-]",
			output.Banner, a.opts.From, a.opts.To, a.opts.Samples, a.opts.Seed))
	a.banner.SetBorder(true).SetTitle(" radixsort ").SetTitleAlign(tview.AlignCenter)

	a.table = tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false)
	a.table.SetBorder(true).SetTitle(" Sort vs Radix Sort ").SetTitleAlign(tview.AlignCenter)
	for col, name := range columns {
		a.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignRight).
			SetSelectable(false).
			SetExpansion(1))
	}

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]Running benchmark...[white] | Press 'q' to quit")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.banner, 4, 0, false).
		AddItem(a.table, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(layout, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' || event.Rune() == 'Q' {
			a.stop()
			return nil
		}
		return event
	})
}

func (a *App) stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.app.Stop()
}

// Run starts the benchmark in the background and blocks until the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	go a.runBenchmark(ctx)

	if err := a.app.Run(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if errors.Is(a.runErr, context.Canceled) {
		return nil
	}
	return a.runErr
}

// Results returns a copy of the results collected so far
func (a *App) Results() []bench.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]bench.Result(nil), a.results...)
}

func (a *App) runBenchmark(ctx context.Context) {
	start := time.Now()
	results, err := bench.Run(ctx, a.opts, func(r bench.Result) {
		a.app.QueueUpdateDraw(func() {
			a.addResult(r)
		})
	})

	a.mu.Lock()
	a.runErr = err
	a.mu.Unlock()
	a.benchComplete.Store(true)

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.app.QueueUpdateDraw(func() {
				a.statusBar.SetText(fmt.Sprintf("[red]Benchmark failed:[white] %v | Press 'q' to quit", err))
			})
		}
		return
	}

	status := fmt.Sprintf("[green]Done[white] in %v | Press 'q' to quit", time.Since(start).Round(time.Millisecond))
	if a.plotPath != "" {
		converted := make([]output.BenchResult, 0, len(results))
		for _, r := range results {
			converted = append(converted, output.NewBenchResult(r))
		}
		if err := output.PlotBenchmark(converted, a.plotPath); err != nil {
			status = fmt.Sprintf("[red]Chart failed:[white] %v | Press 'q' to quit", err)
		} else {
			status = fmt.Sprintf("[green]Done[white], chart saved to %s | Press 'q' to quit", a.plotPath)
		}
	}
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetText(status)
	})
}

// addResult appends r to the results and the table. Must run on the UI goroutine.
func (a *App) addResult(r bench.Result) {
	a.mu.Lock()
	a.results = append(a.results, r)
	row := len(a.results)
	a.mu.Unlock()

	for col, text := range resultRow(r, a.opts.Verify) {
		cell := tview.NewTableCell(text).
			SetAlign(tview.AlignRight).
			SetExpansion(1)
		if col == 3 {
			cell.SetTextColor(speedupColor(r.Speedup))
		}
		a.table.SetCell(row, col, cell)
	}
}

func resultRow(r bench.Result, verify bool) []string {
	verified := "-"
	if verify {
		verified = "no"
		if r.Verified {
			verified = "yes"
		}
	}
	return []string{
		output.FormatNumber(r.Size),
		time.Duration(r.RadixNS).String(),
		time.Duration(r.ComparisonNS).String(),
		fmt.Sprintf("%.2fx", r.Speedup),
		verified,
	}
}

func speedupColor(speedup float64) tcell.Color {
	switch {
	case speedup >= 1:
		return tcell.ColorGreen
	case speedup == 0:
		return tcell.ColorGray
	default:
		return tcell.ColorRed
	}
}
