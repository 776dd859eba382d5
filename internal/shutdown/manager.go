package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pixel-veil/internal/logger"
)

// DefaultTimeout bounds how long a single component may take to stop
const DefaultTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable
type Func func()

func (f Func) Shutdown() { f() }

type component struct {
	name string
	s    Shutdownable
}

// Manager stops registered components in reverse registration order, once,
// either on demand or when SIGINT/SIGTERM arrives.
type Manager struct {
	components []component
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:  log,
		timeout: DefaultTimeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetTimeout changes the per-component timeout
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
}

func (m *Manager) Register(name string, s Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, s: s})
}

// Listen triggers Shutdown on the first interrupt or terminate signal.
// onSignal, if not nil, runs after the shutdown sequence.
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			m.logger.Info("Shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.done:
		}
		signal.Stop(sigChan)
	}()
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Debug("Shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.s.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug("Component stopped", map[string]interface{}{"component": c.name})
		case <-time.After(m.timeout):
			m.logger.Warning("Component shutdown timeout", map[string]interface{}{
				"component": c.name,
				"timeout":   m.timeout.String(),
			})
		}
	}

	m.logger.Debug("Shutdown sequence completed", nil)
}

// Context is cancelled as soon as shutdown begins
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
