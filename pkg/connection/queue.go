package connection

import "container/heap"

// Queue yields connections in ascending distance order. It is not safe for
// concurrent use.
type Queue struct {
	h connHeap
}

// NewQueue takes ownership of conns and heapifies it in O(len(conns)).
// The caller must not use conns afterwards.
func NewQueue(conns []Connection) *Queue {
	q := &Queue{h: connHeap(conns)}
	heap.Init(&q.h)
	return q
}

// PopMin removes and returns the remaining connection with the smallest
// distance. The second result is false when the queue is empty.
func (q *Queue) PopMin() (Connection, bool) {
	if len(q.h) == 0 {
		return Connection{}, false
	}
	return heap.Pop(&q.h).(Connection), true
}

// Empty reports whether every connection has been popped.
func (q *Queue) Empty() bool { return len(q.h) == 0 }

// Len returns the number of connections left.
func (q *Queue) Len() int { return len(q.h) }

type connHeap []Connection

func (h connHeap) Len() int           { return len(h) }
func (h connHeap) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h connHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *connHeap) Push(x any) { *h = append(*h, x.(Connection)) }

func (h *connHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
