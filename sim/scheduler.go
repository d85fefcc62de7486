package sim

import "container/heap"

// scheduledEvent pairs an event with its insertion sequence so that
// simultaneous events are processed FIFO, keeping replications
// deterministic regardless of heap internals.
type scheduledEvent struct {
	event Event
	seq   uint64
}

// EventScheduler is a min-priority queue of pending events keyed by
// (time, insertion sequence). Schedule is O(log n); PopNext returns the
// earliest-time event. Processing an event may enqueue zero or more new
// events.
type EventScheduler struct {
	items   []scheduledEvent
	nextSeq uint64
}

// NewEventScheduler creates an empty scheduler.
func NewEventScheduler() *EventScheduler {
	s := &EventScheduler{items: make([]scheduledEvent, 0)}
	heap.Init(s)
	return s
}

// Len implements heap.Interface.
func (s *EventScheduler) Len() int {
	return len(s.items)
}

// Less implements heap.Interface: time first, insertion sequence second.
func (s *EventScheduler) Less(i, j int) bool {
	if s.items[i].event.Time() != s.items[j].event.Time() {
		return s.items[i].event.Time() < s.items[j].event.Time()
	}
	return s.items[i].seq < s.items[j].seq
}

// Swap implements heap.Interface.
func (s *EventScheduler) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
}

// Push implements heap.Interface.
func (s *EventScheduler) Push(x interface{}) {
	s.items = append(s.items, x.(scheduledEvent))
}

// Pop implements heap.Interface.
func (s *EventScheduler) Pop() interface{} {
	old := s.items
	n := len(old)
	item := old[n-1]
	s.items = old[0 : n-1]
	return item
}

// Schedule inserts an event, assigning its insertion sequence.
func (s *EventScheduler) Schedule(e Event) {
	s.nextSeq++
	heap.Push(s, scheduledEvent{event: e, seq: s.nextSeq})
}

// PopNext removes and returns the earliest-time event, or nil when empty.
func (s *EventScheduler) PopNext() Event {
	if s.Len() == 0 {
		return nil
	}
	return heap.Pop(s).(scheduledEvent).event
}

// Peek returns the earliest-time event without removing it, or nil.
func (s *EventScheduler) Peek() Event {
	if s.Len() == 0 {
		return nil
	}
	return s.items[0].event
}
