// Package lineinput reads lines from a reader in the background so a
// caller driving the emulator can check for input without blocking.
package lineinput

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// DEFAULT_HISTORY is the history size used when New is given 0.
const DEFAULT_HISTORY = 100

// Source is an asynchronous line source with a bounded history.
type Source struct {
	mu      sync.Mutex
	queue   []string
	history []string
	limit   int
	closed  bool
	err     error // why reading stopped, nil at EOF

	ready chan struct{} // signalled when a line arrives or reading stops
}

// New starts reading lines from r. The history keeps the last
// historySize lines returned by Next.
func New(r io.Reader, historySize int) *Source {
	if historySize <= 0 {
		historySize = DEFAULT_HISTORY
	}
	s := &Source{limit: historySize, ready: make(chan struct{}, 1)}
	go s.read(r)
	return s
}

func (s *Source) read(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.queue = append(s.queue, sc.Text())
		s.mu.Unlock()
		s.signal()
	}

	s.mu.Lock()
	s.closed = true
	s.err = sc.Err()
	s.mu.Unlock()
	s.signal()
}

func (s *Source) signal() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next returns the oldest unread line. It never blocks, and returns
// false when no line is waiting.
func (s *Source) Next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pop()
}

// pop is Next with s.mu held.
func (s *Source) pop() (string, bool) {
	if len(s.queue) == 0 {
		return "", false
	}
	line := s.queue[0]
	s.queue = s.queue[1:]
	s.remember(line)
	return line, true
}

func (s *Source) remember(line string) {
	s.history = append(s.history, line)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = append([]string(nil), s.history[over:]...)
	}
}

// Wait returns the next line, blocking until one arrives. It returns
// io.EOF once the reader is exhausted and every line has been taken,
// and ctx.Err() if ctx ends first.
func (s *Source) Wait(ctx context.Context) (string, error) {
	for {
		s.mu.Lock()
		line, ok := s.pop()
		closed, err := s.closed, s.err
		s.mu.Unlock()
		if ok {
			return line, nil
		}
		if closed {
			if err == nil {
				err = io.EOF
			}
			return "", err
		}

		select {
		case <-s.ready:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// History returns the lines returned so far, oldest first.
func (s *Source) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Close stops delivering lines. A read already blocked in the
// underlying reader isn't interrupted, its line is dropped.
func (s *Source) Close() {
	s.mu.Lock()
	s.closed = true
	s.queue = nil
	s.mu.Unlock()
	s.signal()
}
