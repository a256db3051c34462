package mediainfo

import (
	"sync"
	"unsafe"
)

// Allocator provides the memory outbound string parameters are copied into.
// The default allocator uses the C heap (malloc/free).
type Allocator interface {
	// Alloc returns size bytes of memory, or 0 on failure.
	Alloc(size int) uintptr
	// Free releases memory returned by Alloc.
	Free(ptr uintptr)
}

// heapAllocator hands out Go memory pinned by a live reference until Free.
// It is the fallback where no C heap is reachable.
type heapAllocator struct {
	mu   sync.Mutex
	live map[uintptr][]byte
}

func newHeapAllocator() *heapAllocator {
	return &heapAllocator{live: make(map[uintptr][]byte)}
}

func (a *heapAllocator) Alloc(size int) uintptr {
	if size <= 0 {
		return 0
	}
	buf := make([]byte, size)
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	a.mu.Lock()
	a.live[ptr] = buf
	a.mu.Unlock()
	return ptr
}

func (a *heapAllocator) Free(ptr uintptr) {
	a.mu.Lock()
	delete(a.live, ptr)
	a.mu.Unlock()
}

// marshaler moves strings across the native boundary for one session.
type marshaler struct {
	codec   textCodec
	alloc   Allocator
	metrics *Metrics
}

// param copies s into freshly allocated native memory. The returned func
// frees it and must run once the consuming call returns.
func (m marshaler) param(s string) (uintptr, func(), error) {
	buf, err := m.codec.encode(s)
	if err != nil {
		return 0, nil, err
	}
	ptr := m.alloc.Alloc(len(buf))
	if ptr == 0 {
		return 0, nil, ErrAllocFailed
	}
	m.metrics.bufferAllocated()
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(buf)), buf)
	return ptr, func() {
		m.alloc.Free(ptr)
		m.metrics.bufferFreed()
	}, nil
}

// result decodes a string returned by the library.
func (m marshaler) result(ptr uintptr) string {
	return m.codec.decode(ptr)
}
