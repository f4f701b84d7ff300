package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewJobSystemErrors(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("error = %v, want ErrNoWorkers", err)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("error = %v, want ErrNegativeChannelSize", err)
	}
}

func TestJobSystem(t *testing.T) {
	js, err := NewJobSystem(4, 0)
	if err != nil {
		t.Fatal(err)
	}

	var (
		sum       int64
		failures  int64
		completed int64
		wg        sync.WaitGroup
	)
	boom := errors.New("boom")
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		js.Submit(JobTask{
			OnStart: func() (interface{}, error) {
				if i%5 == 0 {
					return nil, boom
				}
				return i, nil
			},
			OnComplete: func(result interface{}) {
				atomic.AddInt64(&sum, int64(result.(int)))
			},
			OnFailure: func(err error) {
				if errors.Is(err, boom) {
					atomic.AddInt64(&failures, 1)
				}
			},
			OnCompletionCallback: func() {
				atomic.AddInt64(&completed, 1)
				wg.Done()
			},
		})
	}
	wg.Wait()

	// 1..10 without 5 and 10
	if sum != 40 || failures != 2 || completed != 10 {
		t.Errorf("sum=%d failures=%d completed=%d", sum, failures, completed)
	}
	if js.Workers() != 4 {
		t.Errorf("Workers() = %d", js.Workers())
	}

	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func TestJobSystemShutdownDrainsQueue(t *testing.T) {
	js, err := NewJobSystem(1, 8)
	if err != nil {
		t.Fatal(err)
	}
	var ran int64
	for i := 0; i < 8; i++ {
		js.Submit(JobTask{OnStart: func() (interface{}, error) {
			atomic.AddInt64(&ran, 1)
			return nil, nil
		}})
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if ran != 8 {
		t.Errorf("ran %d of 8 queued jobs", ran)
	}
}
