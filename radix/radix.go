package radix

const (
	// SignMask flips the sign bit so that unsigned byte order matches signed order.
	SignMask uint32 = 1 << 31
	// DigitBits is the width of one digit.
	DigitBits = 8
	// Passes is the number of digits in a 32-bit value.
	Passes = 32 / DigitBits
	// Buckets is the number of distinct digit values.
	Buckets = 1 << DigitBits
)

// Sort returns a new slice holding the values of input in ascending order.
// input is never modified.
//
// It is a least-significant-digit radix sort: 4 passes over the data (one per
// byte), each a stable counting sort, alternating between two buffers the size
// of input. The sign bit is flipped at digit-extraction time, the buffers
// always hold the original values.
func Sort(input []int32) []int32 {
	n := len(input)
	if n <= 1 {
		out := make([]int32, n)
		copy(out, input)
		return out
	}

	a := make([]int32, n)
	copy(a, input)
	b := make([]int32, n)

	// Slot 0 stays zero so that the prefix sum yields start offsets.
	var hist [Buckets + 1]int

	for s := 0; s < Passes; s++ {
		for _, v := range a {
			hist[Digit(v, s)+1]++
		}

		for d := 1; d < len(hist); d++ {
			hist[d] += hist[d-1]
		}

		for _, v := range a {
			d := Digit(v, s)
			b[hist[d]] = v
			hist[d]++
		}

		a, b = b, a
		hist = [Buckets + 1]int{}
	}

	return a
}

// Digit extracts the digit of v used by the given pass (0 is the least
// significant byte), with the sign bit flipped.
func Digit(v int32, pass int) int {
	return int(((uint32(v) ^ SignMask) >> (uint(pass) * DigitBits)) & (Buckets - 1))
}
