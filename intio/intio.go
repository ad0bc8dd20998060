package intio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrInvalidInt = errors.New("invalid int32")

// ParseInts reads base-10 int32 values separated by whitespace and/or commas.
func ParseInts(r io.Reader) ([]int32, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanTokens)

	var out []int32
	pos := 0
	for scanner.Scan() {
		pos++
		tok := scanner.Text()
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidInt, tok, pos)
		}
		out = append(out, int32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if out == nil {
		out = []int32{}
	}
	return out, nil
}

// FormatInts writes v joined by sep and a trailing newline. An empty
// slice writes nothing.
func FormatInts(w io.Writer, v []int32, sep string) error {
	if len(v) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 12)
	for i, x := range v {
		if i > 0 {
			if _, err := bw.WriteString(sep); err != nil {
				return err
			}
		}
		buf = strconv.AppendInt(buf[:0], int64(x), 10)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',':
		return true
	}
	return false
}

// scanTokens is bufio.ScanWords with commas counted as separators.
func scanTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSeparator(data[start]) {
		start++
	}
	if i := bytes.IndexFunc(data[start:], func(r rune) bool { return r < 0x80 && isSeparator(byte(r)) }); i >= 0 {
		return start + i + 1, data[start : start+i], nil
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
