package radix

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestSort_StaticVectors(t *testing.T) {
	tests := []struct {
		name  string
		input []int32
		want  []int32
	}{
		{"empty", []int32{}, []int32{}},
		{"single", []int32{2}, []int32{2}},
		{"small", []int32{2, 3, 1, 5, 4}, []int32{1, 2, 3, 4, 5}},
		{"negatives", []int32{-10, 8, 0, -11}, []int32{-11, -10, 0, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSort_Nil(t *testing.T) {
	got := Sort(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Sort(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestSort_Extremes(t *testing.T) {
	data := []int32{math.MaxInt32, 0, math.MinInt32, -1, 1, math.MinInt32, math.MaxInt32}
	got := Sort(data)
	expected := []int32{math.MinInt32, math.MinInt32, -1, 0, 1, math.MaxInt32, math.MaxInt32}
	for i, v := range got {
		if v != expected[i] {
			t.Errorf("index %d: expected %d, got %d", i, expected[i], v)
		}
	}
}

func TestSort_MinAndMaxOnly(t *testing.T) {
	got := Sort([]int32{math.MaxInt32, math.MinInt32})
	if got[0] != math.MinInt32 || got[1] != math.MaxInt32 {
		t.Errorf("expected [MinInt32 MaxInt32], got %v", got)
	}
}

func TestSort_AllSame(t *testing.T) {
	data := []int32{-7, -7, -7, -7, -7}
	for _, v := range Sort(data) {
		if v != -7 {
			t.Errorf("expected -7, got %d", v)
		}
	}
}

func TestSort_Reversed(t *testing.T) {
	data := make([]int32, 1000)
	for i := range data {
		data[i] = int32(500 - i)
	}
	got := Sort(data)
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("not sorted at index %d: %d < %d", i, got[i], got[i-1])
		}
	}
	if got[0] != -499 || got[len(got)-1] != 500 {
		t.Errorf("unexpected bounds %d..%d", got[0], got[len(got)-1])
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	data := []int32{3, -1, 4, -1, 5, -9, 2, 6}
	original := slices.Clone(data)

	got := Sort(data)

	if !slices.Equal(data, original) {
		t.Errorf("input mutated: got %v, want %v", data, original)
	}
	got[0] = 100
	if data[0] != original[0] {
		t.Error("result aliases input")
	}
}

func TestSort_SingleDoesNotAlias(t *testing.T) {
	data := []int32{42}
	got := Sort(data)
	got[0] = 7
	if data[0] != 42 {
		t.Errorf("single element result aliases input, input is now %d", data[0])
	}
}

func TestSort_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]int32, 5000)
	for i := range data {
		data[i] = int32(rng.Uint32())
	}
	once := Sort(data)
	twice := Sort(once)
	if !slices.Equal(once, twice) {
		t.Error("sorting a sorted slice changed it")
	}
}

func TestSort_MatchesStdSort(t *testing.T) {
	sizes := []int{2, 3, 64, 100, 257, 10000, 1000000}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(size)))
			data := make([]int32, size)
			for i := range data {
				data[i] = int32(rng.Uint32())
			}

			got := Sort(data)
			want := slices.Clone(data)
			slices.Sort(want)

			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("mismatch at index %d: radix=%d, std=%d", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSort_NarrowRange(t *testing.T) {
	// Values that share their upper bytes exercise the "all in one bucket" passes.
	rng := rand.New(rand.NewSource(99))
	data := make([]int32, 2000)
	for i := range data {
		data[i] = int32(rng.Intn(64)) - 32
	}
	got := Sort(data)
	want := slices.Clone(data)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Error("narrow range output differs from std sort")
	}
}

func TestDigit(t *testing.T) {
	tests := []struct {
		v    int32
		pass int
		want int
	}{
		{0, 0, 0x00},
		{0, 3, 0x80},
		{-1, 0, 0xFF},
		{-1, 3, 0x7F},
		{math.MinInt32, 3, 0x00},
		{math.MaxInt32, 3, 0xFF},
		{0x12345678, 0, 0x78},
		{0x12345678, 1, 0x56},
		{0x12345678, 2, 0x34},
		{0x12345678, 3, 0x92},
	}

	for _, tt := range tests {
		if got := Digit(tt.v, tt.pass); got != tt.want {
			t.Errorf("Digit(%#x, %d) = %#x, want %#x", tt.v, tt.pass, got, tt.want)
		}
	}
}

func TestDigit_TopByteOrdersSigned(t *testing.T) {
	values := []int32{math.MinInt32, -65536, -1, 0, 1, 65536, math.MaxInt32}
	for i := 1; i < len(values); i++ {
		if Digit(values[i-1], Passes-1) > Digit(values[i], Passes-1) {
			t.Errorf("top digit of %d sorts after %d", values[i-1], values[i])
		}
	}
}
