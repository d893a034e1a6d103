package poll

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned by Single.Start while a task is still live
var ErrAlreadyRunning = errors.New("poll task already running")

// Func is the work executed on every tick. ctx is cancelled when the task stops.
type Func func(ctx context.Context)

// Task runs a Func on a fixed period until stopped
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches a repeating task. The first tick fires after one interval.
func Start(ctx context.Context, interval time.Duration, fn Func) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, interval, fn)
	return t
}

func (t *Task) run(ctx context.Context, interval time.Duration, fn Func) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both channels may be ready at once; a stopped task must not tick again.
			if ctx.Err() != nil {
				return
			}
			fn(ctx)
		}
	}
}

// Stop requests the task to end. It does not wait, so it is safe to call from
// inside the task's own Func. Calling it more than once is a no-op.
func (t *Task) Stop() {
	t.cancel()
}

// Done is closed once the loop has exited and no tick is running
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the loop has exited
func (t *Task) Wait() {
	<-t.done
}

// Stopped reports whether the loop has exited
func (t *Task) Stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Single holds at most one live Task
type Single struct {
	mu      sync.Mutex
	current *Task
}

// Start launches a task unless another one is still live
func (s *Single) Start(ctx context.Context, interval time.Duration, fn Func) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !s.current.Stopped() {
		return nil, ErrAlreadyRunning
	}
	s.current = Start(ctx, interval, fn)
	return s.current, nil
}

// Stop stops the live task, if any, without waiting
func (s *Single) Stop() {
	s.mu.Lock()
	t := s.current
	s.mu.Unlock()

	if t != nil {
		t.Stop()
	}
}

// StopAndWait stops the live task and blocks until it has exited.
// Must not be called from inside the task's Func.
func (s *Single) StopAndWait() {
	s.mu.Lock()
	t := s.current
	s.current = nil
	s.mu.Unlock()

	if t != nil {
		t.Stop()
		t.Wait()
	}
}

// Active reports whether a task is live
func (s *Single) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && !s.current.Stopped()
}
