package output

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotBenchmark renders radix sort and sort timings as a line chart with a
// logarithmic time axis, one point per vector size.
func PlotBenchmark(results []BenchResult, filename string) error {
	if len(results) == 0 {
		return fmt.Errorf("no benchmark results to plot")
	}

	sizes := make([]string, 0, len(results))
	radixData := make([]opts.LineData, 0, len(results))
	sortData := make([]opts.LineData, 0, len(results))
	for _, r := range results {
		sizes = append(sizes, fmt.Sprintf("10^%d", r.Exponent))
		radixData = append(radixData, opts.LineData{Value: chartMicros(r.RadixNS), Name: FormatNumber(r.Size)})
		sortData = append(sortData, opts.LineData{Value: chartMicros(r.ComparisonNS), Name: FormatNumber(r.Size)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Sort vs Radix Sort",
			Width:           "150vh",
			Height:          "90vh",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Sort vs Radix Sort",
			Left:  "center",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Values",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Median time (μs)",
			Type: "log",
		}),
	)

	symbols := charts.WithLineChartOpts(opts.LineChart{
		ShowSymbol: opts.Bool(true),
	})
	line.SetXAxis(sizes).
		AddSeries("Radix Sort", radixData, symbols).
		AddSeries("Sort", sortData, symbols)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(line)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create chart file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	return nil
}

// chartMicros converts nanoseconds to microseconds. A log axis cannot show
// zero, so sub-nanosecond medians are clamped to one nanosecond.
func chartMicros(ns int64) float64 {
	if ns < 1 {
		ns = 1
	}
	return float64(ns) / 1000
}
