package ui

import (
	"io"
	"sync"
)

// SampleQueue is a thread-safe FIFO of interleaved int16 stereo samples
// that oto reads as little-endian PCM bytes. The emulation goroutine
// pushes whole frames of samples; oto's player pulls bytes. Read blocks
// while empty. Push drops the oldest samples on overflow so the producer
// never stalls.
type SampleQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []int16
	head   int // index of the oldest sample
	count  int
	closed bool
}

// NewSampleQueue creates a queue holding up to capacity samples.
func NewSampleQueue(capacity int) *SampleQueue {
	q := &SampleQueue{buf: make([]int16, capacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends samples, discarding the oldest ones when full.
func (q *SampleQueue) Push(samples []int16) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(samples) == 0 {
		return
	}
	capacity := len(q.buf)
	if len(samples) > capacity {
		samples = samples[len(samples)-capacity:]
	}
	if drop := q.count + len(samples) - capacity; drop > 0 {
		q.head = (q.head + drop) % capacity
		q.count -= drop
	}

	tail := (q.head + q.count) % capacity
	n := copy(q.buf[tail:], samples)
	copy(q.buf, samples[n:])
	q.count += len(samples)

	q.cond.Signal()
}

// Read implements io.Reader. It returns whole samples only, so len(p)
// below 2 reads nothing. Blocks until samples are queued; returns io.EOF
// once closed and drained.
func (q *SampleQueue) Read(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		if q.closed {
			return 0, io.EOF
		}
		q.cond.Wait()
	}

	n := len(p) / 2
	if n > q.count {
		n = q.count
	}
	capacity := len(q.buf)
	for i := 0; i < n; i++ {
		s := q.buf[(q.head+i)%capacity]
		p[2*i] = byte(s)
		p[2*i+1] = byte(s >> 8)
	}
	q.head = (q.head + n) % capacity
	q.count -= n
	return 2 * n, nil
}

// Len returns the number of queued samples.
func (q *SampleQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Clear discards all queued samples.
func (q *SampleQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head = 0
	q.count = 0
}

// Close unblocks readers. Queued samples can still be drained.
func (q *SampleQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
