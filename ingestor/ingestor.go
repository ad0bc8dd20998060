package ingestor

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"slices"
	"sync/atomic"
	"time"

	lj "github.com/elastic/go-lumber/lj"
	srv2 "github.com/elastic/go-lumber/server/v2"
	"github.com/purkka/radixsort/output"
	"github.com/purkka/radixsort/pools"
	"github.com/purkka/radixsort/radix"
)

// Job is one sequence to sort, decoded from a lumberjack event of the form
// {"id": "...", "values": [3, 1, 2]}.
type Job struct {
	ID     string
	Values []int32
}

// --- TCP Ingestor using go-lumber v2 ---

type TCPIngestor struct {
	listener    net.Listener
	readTimeout time.Duration // for server
	events      chan *lj.Batch
	server      *srv2.Server
	skipped     atomic.Int64
}

func NewTCPIngestor(addr string, readTimeout time.Duration) (*TCPIngestor, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &TCPIngestor{
		listener:    ln,
		readTimeout: readTimeout,
		events:      make(chan *lj.Batch, 1000),
	}, nil
}

// Addr returns the address the ingestor listens on.
func (ing *TCPIngestor) Addr() net.Addr {
	return ing.listener.Addr()
}

// Accept starts the lumberjack v2 Server.
func (ing *TCPIngestor) Accept() error {
	srv, err := srv2.NewWithListener(
		ing.listener,
		srv2.Timeout(ing.readTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create lumberjack server: %w", err)
	}
	ing.server = srv

	// Pull batches off ReceiveChan and ack them.
	go func() {
		for batch := range ing.server.ReceiveChan() {
			ing.events <- batch
			batch.ACK()
		}
		close(ing.events)
	}()

	return nil
}

func parseEvent(evt map[string]interface{}, out *Job) error {
	raw, ok := evt["values"]
	if !ok {
		return errors.New("missing values field")
	}
	list, ok := raw.([]interface{})
	if !ok {
		return errors.New("values is not an array")
	}

	if id, ok := evt["id"]; ok {
		s, ok := id.(string)
		if !ok {
			return errors.New("id is not a string")
		}
		out.ID = s
	}

	scratch := pools.Pools.GetInt32Slice()
	defer func() { pools.Pools.ReturnInt32Slice(scratch) }()

	for i, item := range list {
		v, err := toInt32(item)
		if err != nil {
			return fmt.Errorf("values[%d]: %w", i, err)
		}
		scratch = append(scratch, v)
	}

	out.Values = slices.Clone(scratch)
	if out.Values == nil {
		out.Values = []int32{}
	}
	return nil
}

func toInt32(item interface{}) (int32, error) {
	var f float64
	switch n := item.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("not a number: %T", item)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("out of int32 range: %v", f)
	}
	return int32(f), nil
}

func (ing *TCPIngestor) decodeBatch(batch *lj.Batch, out []Job) []Job {
	for _, evt := range batch.Events {
		m, ok := evt.(map[string]interface{})
		if !ok {
			ing.skipped.Add(1)
			continue
		}
		var job Job
		if err := parseEvent(m, &job); err != nil {
			ing.skipped.Add(1)
			continue
		}
		out = append(out, job)
	}
	return out
}

// Next blocks until a batch arrives and returns its jobs. ok is false once
// the ingestor is closed and drained.
func (ing *TCPIngestor) Next() (jobs []Job, ok bool) {
	batch, ok := <-ing.events
	if !ok {
		return nil, false
	}
	return ing.decodeBatch(batch, nil), true
}

// ReadBatch drains all batches currently buffered without blocking.
func (ing *TCPIngestor) ReadBatch() ([]Job, error) {
	var out []Job

	for {
		select {
		case batch, ok := <-ing.events:
			if !ok {
				return out, nil
			}
			out = ing.decodeBatch(batch, out)
		default:
			// Channel is empty, return what we have
			return out, nil
		}
	}
}

// Skipped returns the number of events dropped because they were malformed.
func (ing *TCPIngestor) Skipped() int64 {
	return ing.skipped.Load()
}

// Close shuts down the server and listener.
func (ing *TCPIngestor) Close() error {
	if ing.server != nil {
		err := ing.server.Close()
		ing.listener.Close() // already closed by the server in the common case
		return err
	}
	return ing.listener.Close()
}

// Process sorts every job and writes one output.SortedBatch line per job.
func Process(jobs []Job, w io.Writer) error {
	for _, job := range jobs {
		sorted := radix.Sort(job.Values)
		batch := output.SortedBatch{
			ID:     job.ID,
			Count:  len(sorted),
			Values: sorted,
		}
		if err := output.WriteSortedBatch(w, batch); err != nil {
			return err
		}
	}
	return nil
}
