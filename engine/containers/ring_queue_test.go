package containers

import (
	"errors"
	"testing"
)

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[int](3)

	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("Dequeue on empty queue error = %v", err)
	}
	if _, err := rq.Peek(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("Peek on empty queue error = %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatal(err)
		}
	}
	if !rq.IsFull() || rq.Len() != 3 || rq.Cap() != 3 {
		t.Errorf("len=%d cap=%d full=%v", rq.Len(), rq.Cap(), rq.IsFull())
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Enqueue on full queue error = %v", err)
	}

	// wrap around the buffer end
	for i := 1; i <= 7; i++ {
		front, err := rq.Peek()
		if err != nil || front != i {
			t.Fatalf("Peek() = %d, %v, want %d", front, err, i)
		}
		got, err := rq.Dequeue()
		if err != nil || got != i {
			t.Fatalf("Dequeue() = %d, %v, want %d", got, err, i)
		}
		if err := rq.Enqueue(i + 3); err != nil {
			t.Fatal(err)
		}
	}
	if rq.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rq.Len())
	}
}

func TestRingQueueZeroSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		rq := NewRingQueue[string](size)
		if err := rq.Enqueue("x"); !errors.Is(err, ErrQueueFull) {
			t.Errorf("size %d: Enqueue error = %v, want ErrQueueFull", size, err)
		}
		if !rq.IsEmpty() {
			t.Errorf("size %d: queue should be empty", size)
		}
	}
}
