// Package shutdown runs registered close callbacks concurrently with a
// deadline, so a hung store or stream cannot stall process exit.
package shutdown

import (
	"context"
	"sync"

	"github.com/sparkfi/sparkgo/pkg/logger"
)

// Handler is one close callback.
type Handler func(ctx context.Context)

// Manager collects handlers and runs them all on Shutdown.
type Manager struct {
	mu        sync.Mutex
	callbacks []Handler
}

func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers a handler. Safe to call from any goroutine.
func (m *Manager) OnShutdown(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, handler)
}

// Shutdown runs every handler concurrently and blocks until they finish
// or ctx expires. Pass a context with a timeout.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	callbacks := m.callbacks
	m.mu.Unlock()

	if len(callbacks) == 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(callbacks))
	for _, cb := range callbacks {
		go func(handler Handler) {
			defer wg.Done()
			handler(ctx)
		}(cb)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warnf("[shutdown] timed out: %v", ctx.Err())
	}
}
