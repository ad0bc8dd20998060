package pools

import (
	"bytes"
	"sync"
)

// GlobalPools provides centralized memory pooling for the ingest path
type GlobalPools struct {
	Int32Slices sync.Pool
	ByteBuffers sync.Pool
}

// Pools is the global instance of memory pools
var Pools = &GlobalPools{
	Int32Slices: sync.Pool{
		New: func() interface{} {
			slice := make([]int32, 0, 1024)
			return &slice
		},
	},
	ByteBuffers: sync.Pool{
		New: func() interface{} {
			buf := &bytes.Buffer{}
			buf.Grow(4096)
			return buf
		},
	},
}

// GetInt32Slice gets an int32 slice from the pool and resets it
func (gp *GlobalPools) GetInt32Slice() []int32 {
	slicePtr := gp.Int32Slices.Get().(*[]int32)
	*slicePtr = (*slicePtr)[:0] // Reset length while keeping capacity
	return *slicePtr
}

// ReturnInt32Slice returns an int32 slice to the pool
func (gp *GlobalPools) ReturnInt32Slice(slice []int32) {
	if cap(slice) <= 1<<16 { // Prevent memory bloat
		emptySlice := slice[:0]
		gp.Int32Slices.Put(&emptySlice)
	}
}

// GetBuffer gets a byte buffer from the pool and resets it
func (gp *GlobalPools) GetBuffer() *bytes.Buffer {
	buf := gp.ByteBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// ReturnBuffer returns a byte buffer to the pool
func (gp *GlobalPools) ReturnBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= 1<<20 {
		gp.ByteBuffers.Put(buf)
	}
}
