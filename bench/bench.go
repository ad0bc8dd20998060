// Package bench times radix.Sort against slices.Sort over vectors of 10^k
// random integers.
package bench

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/purkka/radixsort/radix"
	"github.com/purkka/radixsort/vecgen"
	"github.com/purkka/radixsort/verify"
)

var (
	ErrInvalidRange   = errors.New("invalid exponent range")
	ErrInvalidSamples = errors.New("samples must be at least 1")
)

// Options controls a benchmark run.
type Options struct {
	From    uint32 // smallest exponent, inclusive
	To      uint32 // largest exponent, inclusive
	Samples int
	Seed    int64
	Verify  bool
}

// DefaultOptions mirrors the sizes the original benchmark covered: 10^0 to 10^5.
func DefaultOptions() Options {
	return Options{
		From:    0,
		To:      5,
		Samples: 10,
		Seed:    42,
		Verify:  true,
	}
}

// Validate checks the exponent range and sample count.
func (o Options) Validate() error {
	if o.To < o.From {
		return fmt.Errorf("%w: to (%d) < from (%d)", ErrInvalidRange, o.To, o.From)
	}
	if o.To > vecgen.MaxExponent {
		return fmt.Errorf("%w: to (%d) > %d", ErrInvalidRange, o.To, vecgen.MaxExponent)
	}
	if o.Samples < 1 {
		return ErrInvalidSamples
	}
	return nil
}

// Result holds the timings for one vector size.
type Result struct {
	Exponent     uint32
	Size         int
	Samples      int
	RadixNS      int64 // median
	ComparisonNS int64 // median
	// Speedup is ComparisonNS / RadixNS, 0 when the radix time rounds to zero.
	Speedup  float64
	Verified bool
}

// Run measures every exponent in [opts.From, opts.To]. progress, if non-nil,
// is called after each size. The context is checked between sizes.
func Run(ctx context.Context, opts Options, progress func(Result)) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gen := vecgen.New(opts.Seed)
	results := make([]Result, 0, opts.To-opts.From+1)

	for k := opts.From; k <= opts.To; k++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		input, err := gen.Vector(k)
		if err != nil {
			return results, fmt.Errorf("generating 10^%d values: %w", k, err)
		}

		r := measure(input, opts.Samples)
		r.Exponent = k
		if opts.Verify {
			r.Verified = verify.Check(input, radix.Sort(input)).OK()
		}

		results = append(results, r)
		if progress != nil {
			progress(r)
		}
	}

	return results, nil
}

func measure(input []int32, samples int) Result {
	radixTimes := make([]int64, samples)
	compTimes := make([]int64, samples)

	for i := 0; i < samples; i++ {
		start := time.Now()
		_ = radix.Sort(input)
		radixTimes[i] = time.Since(start).Nanoseconds()

		start = time.Now()
		ref := slices.Clone(input)
		slices.Sort(ref)
		compTimes[i] = time.Since(start).Nanoseconds()
	}

	r := Result{
		Size:         len(input),
		Samples:      samples,
		RadixNS:      median(radixTimes),
		ComparisonNS: median(compTimes),
	}
	if r.RadixNS > 0 {
		r.Speedup = float64(r.ComparisonNS) / float64(r.RadixNS)
	}
	return r
}

// median sorts xs in place.
func median(xs []int64) int64 {
	if len(xs) == 0 {
		return 0
	}
	slices.Sort(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 0 {
		return (xs[mid-1] + xs[mid]) / 2
	}
	return xs[mid]
}
