// internal/pkg/connectivity/monitor.go
package connectivity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ProbeFunc checks whether the remote backend is reachable
type ProbeFunc func(ctx context.Context) error

// Monitor maintains the terminal's online/offline flag by probing the remote
// backend on an interval, and fans out went-online / went-offline transition
// events to subscribers.
type Monitor struct {
	probe    ProbeFunc
	interval time.Duration
	timeout  time.Duration
	logger   *logrus.Logger

	online  atomic.Bool
	started atomic.Bool
	stop    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	subs    map[int]func(online bool)
	nextSub int
}

// NewMonitor creates a monitor; the probe result drives the online flag
func NewMonitor(probe ProbeFunc, interval, timeout time.Duration, logger *logrus.Logger) *Monitor {
	m := &Monitor{
		probe:    probe,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		subs:     make(map[int]func(online bool)),
	}
	return m
}

// Online reports the last known connectivity state
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Subscribe registers a callback fired on every transition with the new
// state. The returned function removes the subscription.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Start probes once synchronously to seed the flag, then keeps probing in the
// background until Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	if !m.started.CompareAndSwap(false, true) {
		return
	}

	m.online.Store(m.runProbe(ctx))

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.setOnline(m.runProbe(ctx))
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts the background probing
func (m *Monitor) Stop() {
	if !m.started.Load() {
		return
	}
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	<-m.done
}

// SetOnline forces the state, firing transition events. Exposed for manual
// override (a cashier toggling offline mode) and for tests.
func (m *Monitor) SetOnline(online bool) {
	m.setOnline(online)
}

func (m *Monitor) runProbe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.probe(probeCtx); err != nil {
		return false
	}
	return true
}

func (m *Monitor) setOnline(online bool) {
	previous := m.online.Swap(online)
	if previous == online {
		return
	}

	if online {
		m.logger.Info("connectivity restored, backend reachable")
	} else {
		m.logger.Warn("connectivity lost, backend unreachable")
	}

	m.mu.Lock()
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
}
