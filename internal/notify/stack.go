package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	vlog "github.com/ytget/videogen/internal/log"
	"github.com/ytget/videogen/internal/model"
)

// DefaultAutoHide is how long a banner stays visible
const DefaultAutoHide = 5 * time.Second

// Container displays banners. Prepend puts a banner above all existing ones.
type Container interface {
	Prepend(f Fragment)
	Remove(id string)
}

// Stack shows banners in a Container and removes each after a timeout
type Stack struct {
	container Container
	autoHide  time.Duration
	logger    zerolog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewStack creates a stack; autoHide <= 0 selects DefaultAutoHide
func NewStack(container Container, autoHide time.Duration) *Stack {
	if autoHide <= 0 {
		autoHide = DefaultAutoHide
	}
	return &Stack{
		container: container,
		autoHide:  autoHide,
		logger:    vlog.WithComponent("notify"),
		timers:    make(map[string]*time.Timer),
	}
}

// SetAutoHide changes the timeout for banners shown from now on
func (s *Stack) SetAutoHide(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoHide = d
}

// Notify renders and shows a banner, scheduling its removal
func (s *Stack) Notify(message string, severity model.Severity) Fragment {
	f := Render(message, severity)

	s.mu.Lock()
	s.container.Prepend(f)
	s.timers[f.ID] = time.AfterFunc(s.autoHide, func() {
		s.Dismiss(f.ID)
	})
	s.mu.Unlock()

	s.logger.Debug().Str("severity", severity.String()).Str("message", message).Msg("notification shown")
	return f
}

// Dismiss removes a banner now. Unknown or already removed IDs are ignored.
func (s *Stack) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return
	}
	timer.Stop()
	delete(s.timers, id)
	s.container.Remove(id)
}

// Len returns the number of banners currently shown
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close removes every banner and cancels pending timers
func (s *Stack) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		s.container.Remove(id)
		delete(s.timers, id)
	}
}
