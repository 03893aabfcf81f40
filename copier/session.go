package copier

import (
	"context"
	"sync"
)

// Session is an active registration of a Copier on an event source.
type Session struct {
	once    sync.Once
	mu      sync.Mutex
	active  bool
	remove  func()
	copier  *Copier
	handled int
}

// Activate registers c as a capture listener on source.
func Activate(source EventSource, c *Copier) *Session {
	s := &Session{copier: c, active: true}
	s.remove = source.AddListener(func(ctx context.Context, ev *Event) {
		if c.HandleEvent(ctx, ev) {
			s.mu.Lock()
			s.handled++
			s.mu.Unlock()
		}
	})
	return s
}

// Release unregisters the listener and waits for pending clipboard writes.
// Calling it more than once is a no-op.
func (s *Session) Release() {
	s.once.Do(func() {
		s.remove()
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		s.copier.Wait()
	})
}

// Active reports whether the session has not been released.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Handled returns the number of intercepted events.
func (s *Session) Handled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handled
}
