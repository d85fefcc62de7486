// Implements the FIFO queue of requests waiting at a station.
// The request currently in service is never held in the queue.

package sim

import (
	"fmt"
	"strings"
)

// FIFOQueue is a first-in-first-out queue of waiting requests.
type FIFOQueue struct {
	queue []*Request
}

// Enqueue adds a request to the back of the queue.
func (q *FIFOQueue) Enqueue(r *Request) {
	q.queue = append(q.queue, r)
}

// Dequeue removes and returns the request at the front of the queue.
// Returns nil if the queue is empty.
func (q *FIFOQueue) Dequeue() *Request {
	if len(q.queue) == 0 {
		return nil
	}
	front := q.queue[0]
	q.queue = q.queue[1:]
	return front
}

// Peek returns the request at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *FIFOQueue) Peek() *Request {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Len returns the number of waiting requests.
func (q *FIFOQueue) Len() int {
	return len(q.queue)
}

func (q *FIFOQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range q.queue {
		sb.WriteString(fmt.Sprint(r.ID))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
