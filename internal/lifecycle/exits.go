package lifecycle

import (
	"errors"
	"io"
	"sync"
)

// Exits is a LIFO stack of cleanup functions. Resources acquired during
// preparation push their release onto the stack; Close runs them in reverse
// order of registration.
//
// The zero value is ready to use.
type Exits struct {
	mu       sync.Mutex
	cleanups []func() error
	closed   bool
}

// NewExits returns an empty exit stack.
func NewExits() *Exits {
	return &Exits{}
}

// Push registers a cleanup. Pushing onto a closed stack runs the cleanup
// immediately and returns its error.
func (e *Exits) Push(cleanup func() error) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return cleanup()
	}
	e.cleanups = append(e.cleanups, cleanup)
	e.mu.Unlock()
	return nil
}

// PushCloser registers c.Close as a cleanup.
func (e *Exits) PushCloser(c io.Closer) error {
	return e.Push(c.Close)
}

// Len reports the number of pending cleanups.
func (e *Exits) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cleanups)
}

// Close runs all pending cleanups, most recent first. Every cleanup runs even
// when earlier ones fail; failures are joined. Subsequent calls are no-ops.
func (e *Exits) Close() error {
	e.mu.Lock()
	cleanups := e.cleanups
	e.cleanups = nil
	e.closed = true
	e.mu.Unlock()

	var errs []error
	for i := len(cleanups) - 1; i >= 0; i-- {
		if err := cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
