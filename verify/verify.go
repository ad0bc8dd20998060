// Package verify checks sort output against a reference comparison sort.
package verify

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alphadose/haxmap"
)

var (
	ErrNotSorted      = errors.New("output is not in ascending order")
	ErrNotPermutation = errors.New("output is not a permutation of the input")
	ErrMismatch       = errors.New("output differs from reference sort")
)

// Report is the outcome of Check.
type Report struct {
	Length           int  `json:"length"`
	Sorted           bool `json:"sorted"`
	Permutation      bool `json:"permutation"`
	MatchesReference bool `json:"matches_reference"`
	// FirstMismatch is the first index differing from the reference, or -1.
	FirstMismatch int `json:"first_mismatch"`
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return r.Sorted && r.Permutation && r.MatchesReference
}

// Err returns the first failed check as an error, or nil.
func (r Report) Err() error {
	switch {
	case !r.Sorted:
		return ErrNotSorted
	case !r.Permutation:
		return ErrNotPermutation
	case !r.MatchesReference:
		return fmt.Errorf("%w at index %d", ErrMismatch, r.FirstMismatch)
	}
	return nil
}

// IsSorted reports whether v is non-descending.
func IsSorted(v []int32) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}

// IsPermutation reports whether a and b hold the same multiset of values.
func IsPermutation(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	counts := haxmap.New[int32, int](uintptr(len(a)))
	for _, v := range a {
		c, _ := counts.Get(v)
		counts.Set(v, c+1)
	}
	for _, v := range b {
		c, ok := counts.Get(v)
		if !ok || c == 0 {
			return false
		}
		counts.Set(v, c-1)
	}
	return true
}

// Check compares output against input sorted with slices.Sort.
func Check(input, output []int32) Report {
	r := Report{
		Length:        len(output),
		Sorted:        IsSorted(output),
		Permutation:   IsPermutation(input, output),
		FirstMismatch: -1,
	}

	reference := slices.Clone(input)
	slices.Sort(reference)

	limit := min(len(reference), len(output))
	for i := 0; i < limit; i++ {
		if reference[i] != output[i] {
			r.FirstMismatch = i
			break
		}
	}
	if r.FirstMismatch == -1 && len(reference) != len(output) {
		r.FirstMismatch = limit
	}
	r.MatchesReference = r.FirstMismatch == -1

	return r
}
