package sim

import (
	"math/rand"
	"testing"
)

// stubEvent is a schedulable no-op for scheduler tests.
type stubEvent struct {
	t  float64
	id int
}

func (e *stubEvent) Time() float64       { return e.t }
func (e *stubEvent) Execute(*Simulation) {}

func TestEventScheduler_PopOrder_NonDecreasing(t *testing.T) {
	// GIVEN a scheduler loaded with events at random times
	s := NewEventScheduler()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s.Schedule(&stubEvent{t: rng.Float64() * 100, id: i})
	}

	// WHEN all events are popped
	// THEN the sequence of times is non-decreasing
	prev := -1.0
	for s.Len() > 0 {
		ev := s.PopNext()
		if ev.Time() < prev {
			t.Fatalf("event popped out of time order: %f after %f", ev.Time(), prev)
		}
		prev = ev.Time()
	}
}

func TestEventScheduler_Ties_FIFOByInsertion(t *testing.T) {
	// GIVEN several events scheduled at the same time, interleaved with others
	s := NewEventScheduler()
	s.Schedule(&stubEvent{t: 5.0, id: 0})
	s.Schedule(&stubEvent{t: 1.0, id: 1})
	s.Schedule(&stubEvent{t: 5.0, id: 2})
	s.Schedule(&stubEvent{t: 5.0, id: 3})
	s.Schedule(&stubEvent{t: 2.0, id: 4})

	// WHEN popped
	got := make([]int, 0, 5)
	for s.Len() > 0 {
		got = append(got, s.PopNext().(*stubEvent).id)
	}

	// THEN simultaneous events come out in insertion order
	want := []int{1, 4, 0, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order: got %v, want %v", got, want)
		}
	}
}

func TestEventScheduler_Empty(t *testing.T) {
	s := NewEventScheduler()
	if s.PopNext() != nil {
		t.Error("PopNext on empty scheduler should return nil")
	}
	if s.Peek() != nil {
		t.Error("Peek on empty scheduler should return nil")
	}
}

func TestEventScheduler_Peek_DoesNotRemove(t *testing.T) {
	s := NewEventScheduler()
	s.Schedule(&stubEvent{t: 3.0, id: 0})
	s.Schedule(&stubEvent{t: 1.0, id: 1})

	if got := s.Peek().(*stubEvent).id; got != 1 {
		t.Errorf("Peek: got id %d, want 1", got)
	}
	if s.Len() != 2 {
		t.Errorf("Peek modified scheduler length: got %d, want 2", s.Len())
	}
}
