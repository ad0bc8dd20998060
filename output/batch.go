package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/purkka/radixsort/pools"
)

// SortedBatch is one line of serve output
type SortedBatch struct {
	ID     string  `json:"id,omitempty"`
	Count  int     `json:"count"`
	Values []int32 `json:"values"`
}

// WriteSortedBatch writes batch as a single JSON line
func WriteSortedBatch(w io.Writer, batch SortedBatch) error {
	buf := pools.Pools.GetBuffer()
	defer pools.Pools.ReturnBuffer(buf)

	if batch.Values == nil {
		batch.Values = []int32{}
	}
	// Encode appends the trailing newline
	if err := json.NewEncoder(buf).Encode(batch); err != nil {
		return fmt.Errorf("encoding batch %q: %w", batch.ID, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing batch %q: %w", batch.ID, err)
	}
	return nil
}
