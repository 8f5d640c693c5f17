// Implements the RecordQueue, which buffers callback records until the
// consumer drains them.

package bridge

import "sync"

const minQueueCap = 16

// RecordQueue is a FIFO ring buffer of Records.
// Push and Pop are O(1) amortized and safe for concurrent use, so a host
// that fires callbacks from several threads can append while Drain pops.
type RecordQueue struct {
	mu    sync.Mutex
	buf   []Record
	head  int
	count int
}

// NewRecordQueue returns an empty queue.
func NewRecordQueue() *RecordQueue {
	return &RecordQueue{buf: make([]Record, minQueueCap)}
}

// Push appends r to the tail.
func (q *RecordQueue) Push(r Record) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = r
	q.count++
}

// Pop removes and returns the head record.
// Returns (Record{}, false) if the queue is empty.
func (q *RecordQueue) Pop() (Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return Record{}, false
	}
	r := q.buf[q.head]
	// release the strings held by the slot
	q.buf[q.head] = Record{}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	if q.count == 0 {
		q.head = 0
	}
	return r, true
}

// Len returns the number of queued records.
func (q *RecordQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// grow doubles the buffer, unwrapping the ring so head moves to 0.
// Caller holds q.mu.
func (q *RecordQueue) grow() {
	n := len(q.buf) * 2
	if n < minQueueCap {
		n = minQueueCap
	}
	buf := make([]Record, n)
	for i := 0; i < q.count; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
