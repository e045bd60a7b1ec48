// internal/platform/workerpool/worker_pool_test.go
package workerpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"ipsift/internal/platform/logx"
)

// fakeTask es una tarea controlable para ejercitar el pool.
type fakeTask struct {
	name     string
	block    bool
	executed int32
	canceled int32
}

func (f *fakeTask) Execute(ctx context.Context) error {
	atomic.AddInt32(&f.executed, 1)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeTask) Cancel() {
	atomic.AddInt32(&f.canceled, 1)
}

func (f *fakeTask) Name() string {
	return f.name
}

func TestPoolDeliversAllResults(t *testing.T) {
	pool := New(Config{Workers: 2, Logger: logx.NewSilent()})
	defer pool.Stop()

	tasks := make([]Task, 5)
	for i := range tasks {
		tasks[i] = &fakeTask{name: "task"}
	}
	pool.Run(tasks)

	for i := 0; i < len(tasks); i++ {
		select {
		case res := <-pool.Results():
			if res.Error != nil {
				t.Errorf("unexpected task error: %v", res.Error)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d", i)
		}
	}

	for i, task := range tasks {
		ft := task.(*fakeTask)
		if atomic.LoadInt32(&ft.executed) != 1 {
			t.Errorf("task %d executed %d times, want 1", i, ft.executed)
		}
	}
}

func TestPoolStopCancelsQueuedTasks(t *testing.T) {
	pool := New(Config{Workers: 1, Logger: logx.NewSilent()})

	tasks := make([]Task, 4)
	for i := range tasks {
		tasks[i] = &fakeTask{name: "blocking", block: true}
	}
	pool.Run(tasks)

	// dar tiempo a que el único worker tome la primera tarea
	time.Sleep(20 * time.Millisecond)
	pool.Stop()

	canceled := 0
	executed := 0
	for _, task := range tasks {
		ft := task.(*fakeTask)
		if atomic.LoadInt32(&ft.canceled) > 0 {
			canceled++
		}
		if atomic.LoadInt32(&ft.executed) > 0 {
			executed++
		}
	}

	if executed != 1 {
		t.Errorf("executed = %d, want only the in-flight task", executed)
	}
	if canceled != 3 {
		t.Errorf("canceled = %d, want the 3 queued tasks", canceled)
	}
}

func TestPoolStopClosesResults(t *testing.T) {
	pool := New(Config{Workers: 2, Logger: logx.NewSilent()})
	pool.Run([]Task{&fakeTask{name: "quick"}})

	pool.Stop()
	pool.Stop() // idempotente

	// el canal cerrado debe drenar sin bloquear
	for range pool.Results() {
	}
}

func TestPoolCapsWorkersToTaskCount(t *testing.T) {
	pool := New(Config{Workers: 16, Logger: logx.NewSilent()})
	defer pool.Stop()

	pool.Run([]Task{&fakeTask{name: "only"}})

	select {
	case <-pool.Results():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the single result")
	}
}
