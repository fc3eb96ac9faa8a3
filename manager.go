package baselog

import (
	"context"
	"sync"

	"github.com/baselog/baselog-go/api"
)

// Manager is the lifecycle wrapper around a single [Logger]. It is the
// intended factory for an application's logger at its entry boundary;
// the package exposes no ambient shared instance.
type Manager struct {
	mu         sync.Mutex
	logger     *Logger
	configured bool
}

// NewManager creates an unconfigured manager.
func NewManager() *Manager {
	return &Manager{}
}

// Configure builds exactly one logger from the given config and records
// whether remote delivery actually came up. It never returns an error;
// a failed configuration leaves a working local-mode logger behind and
// reports false.
func (m *Manager) Configure(ctx context.Context, cfg api.Config, opts ...Option) bool {
	logger := NewWithConfig(ctx, cfg, opts...)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logger != nil {
		m.logger.Close()
	}
	m.logger = logger
	m.configured = logger.Mode() == ModeRemote
	return m.configured
}

// Reset discards the logger and the configured flag unconditionally. It is
// a no-op on an unconfigured manager.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logger != nil {
		m.logger.Close()
	}
	m.logger = nil
	m.configured = false
}

// Configured reports whether the last Configure ended in remote mode.
func (m *Manager) Configured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configured
}

// Logger returns the managed logger, lazily creating a local-mode one so
// that callers can always log.
func (m *Manager) Logger() *Logger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logger == nil {
		m.logger = New()
	}
	return m.logger
}
