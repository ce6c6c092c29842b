// Package lifecycle sequences service teardown. Components register a stop
// callback as they come up; on shutdown the callbacks run newest-first so a
// component is never stopped while something started after it still depends
// on it.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Hook stops one component. It must respect the context deadline.
type Hook func(ctx context.Context) error

type registration struct {
	name string
	stop Hook
}

// Manager collects shutdown hooks and runs them when the service stops.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []registration
}

const defaultShutdownTimeout = 15 * time.Second

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register records a named stop callback. Nil hooks are ignored.
func (m *Manager) Register(name string, stop Hook) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, registration{name: name, stop: stop})
	m.mu.Unlock()
}

// Shutdown stops every registered component in reverse registration order,
// bounded by the manager's timeout. A failing hook is reported but does not
// keep the remaining components from stopping.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	hooks := make([]registration, len(m.hooks))
	copy(hooks, m.hooks)
	m.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		r := hooks[i]
		if err := r.stop(ctx); err != nil {
			m.logger.Error("component stop failed", zap.String("component", r.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
			continue
		}
		m.logger.Info("component stopped", zap.String("component", r.name))
	}
	return errors.Join(errs...)
}

// Listen watches for SIGTERM/SIGINT in the background and invokes cancel on
// the first signal.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
