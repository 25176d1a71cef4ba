package changefeed

import "sync"

// Subscription is the handle for one (scope, key) channel. The handler lives
// in a replaceable slot: swapping it does not reopen the channel, so
// consumers can change callbacks without a resubscription storm.
type Subscription struct {
	router *Router
	scope  Scope
	key    string

	mu      sync.Mutex
	handler Handler
	pending map[string]Signal
	closed  bool

	notify chan struct{}
	done   chan struct{}
}

// SetHandler replaces the handler slot. Signals that arrived while no
// handler was attached are delivered to the new handler.
func (s *Subscription) SetHandler(fn Handler) {
	s.mu.Lock()
	s.handler = fn
	hasPending := len(s.pending) > 0
	s.mu.Unlock()

	if fn != nil && hasPending {
		s.nudge()
	}
}

// Close tears the channel down. Pending signals are discarded.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.router.unsubscribe(s)
	close(s.done)
}

// deliver coalesces the signal into the per-table pending slot. One pending
// signal per table is kept while the consumer is busy; delivery stays
// at-least-once because the consumer re-queries on every signal anyway.
func (s *Subscription) deliver(signal Signal) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending[signal.Table] = signal
	s.mu.Unlock()

	s.nudge()
}

func (s *Subscription) nudge() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Subscription) loop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.notify:
			s.drain()
		}
	}
}

func (s *Subscription) drain() {
	for {
		s.mu.Lock()
		if s.closed || s.handler == nil || len(s.pending) == 0 {
			s.mu.Unlock()
			return
		}
		var next Signal
		for table, signal := range s.pending {
			next = signal
			delete(s.pending, table)
			break
		}
		handler := s.handler
		s.mu.Unlock()

		handler(next)
	}
}
