package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Banner is printed at the top of plain reports and in the TUI.
const Banner = "This program sorts vectors of 32-bit integers using a radix sort algorithm"

const (
	heavyRule = "═══════════════════════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────────────────────"
)

// WritePlain formats the output as human-readable plain text
func WritePlain(w io.Writer, out *JSONOutput) {
	fmt.Fprintf(w, "%s\n", heavyRule)
	fmt.Fprintf(w, "  %s\n", Banner)
	fmt.Fprintf(w, "%s\n\n", heavyRule)

	fmt.Fprintf(w, "📊 RUN OVERVIEW\n")
	fmt.Fprintf(w, "%s\n", lightRule)
	fmt.Fprintf(w, "Type:            %s\n", out.Metadata.AnalysisType)
	fmt.Fprintf(w, "Version:         %s\n", out.Metadata.Version)
	fmt.Fprintf(w, "Generated:       %s\n", out.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Duration:        %d ms\n", out.Metadata.DurationMS)
	fmt.Fprintf(w, "\n")

	if out.Benchmark != nil {
		p := out.Benchmark.Parameters
		fmt.Fprintf(w, "⚡ RADIX SORT VS SORT\n")
		fmt.Fprintf(w, "%s\n", lightRule)
		fmt.Fprintf(w, "Sizes:           10^%d .. 10^%d\n", p.From, p.To)
		fmt.Fprintf(w, "Samples:         %d (median reported)\n", p.Samples)
		fmt.Fprintf(w, "Seed:            %d\n", p.Seed)
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "  %12s  %14s  %14s  %8s  %s\n", "values", "radix sort", "sort", "speedup", "verified")
		for _, r := range out.Benchmark.Results {
			fmt.Fprintf(w, "  %12s  %14s  %14s  %7.2fx  %s\n",
				FormatNumber(r.Size),
				time.Duration(r.RadixNS).String(),
				time.Duration(r.ComparisonNS).String(),
				r.Speedup,
				verifiedMark(r.Verified, p.Verify))
		}
		fmt.Fprintf(w, "\n")
	}

	if out.Verification != nil {
		r := out.Verification.Report
		fmt.Fprintf(w, "🔍 VERIFICATION\n")
		fmt.Fprintf(w, "%s\n", lightRule)
		if out.Verification.Input != "" {
			fmt.Fprintf(w, "Input:           %s\n", out.Verification.Input)
		}
		fmt.Fprintf(w, "Values:          %s\n", FormatNumber(r.Length))
		fmt.Fprintf(w, "Sort Time:       %d μs\n", out.Verification.SortUS)
		fmt.Fprintf(w, "Ascending:       %s\n", yesNo(r.Sorted))
		fmt.Fprintf(w, "Permutation:     %s\n", yesNo(r.Permutation))
		fmt.Fprintf(w, "Matches Sort:    %s\n", yesNo(r.MatchesReference))
		if r.FirstMismatch >= 0 {
			fmt.Fprintf(w, "First Mismatch:  index %d\n", r.FirstMismatch)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(out.Warnings) > 0 || len(out.Errors) > 0 {
		fmt.Fprintf(w, "⚠️  DIAGNOSTICS\n")
		fmt.Fprintf(w, "%s\n", lightRule)

		if len(out.Warnings) > 0 {
			fmt.Fprintf(w, "Warnings:\n")
			for _, warning := range out.Warnings {
				fmt.Fprintf(w, "  • %s\n", warning.Message)
			}
		}

		if len(out.Errors) > 0 {
			fmt.Fprintf(w, "Errors:\n")
			for _, err := range out.Errors {
				fmt.Fprintf(w, "  • %s\n", err.Message)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "%s\n", heavyRule)
}

func verifiedMark(verified, requested bool) string {
	switch {
	case !requested:
		return "-"
	case verified:
		return "✅"
	default:
		return "❌"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "NO"
}

// FormatNumber adds thousand separators to numbers
func FormatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	return result.String()
}
