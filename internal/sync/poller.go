// Package sync keeps the terms catalog in step with the terms file on disk.
package sync

import (
	"fmt"
	"os"
	gosync "sync"
	"time"

	"go.uber.org/zap"
)

// State is the current state of the poller.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateError
)

// Status is a snapshot of the poller.
type Status struct {
	Path     string
	State    State
	LastSync time.Time
	ModTime  time.Time
	Error    error
}

// Loader merges a terms file into a catalog. *i18n.Catalog implements it.
type Loader interface {
	Load(path string) error
}

const defaultInterval = 60 * time.Second

// Poller reloads a terms file whenever its modification time changes.
// Reloads merge into the catalog, so terms deleted from the file keep
// their last value until restart.
type Poller struct {
	loader   Loader
	path     string
	interval time.Duration
	log      *zap.Logger

	mu        gosync.Mutex
	status    Status
	running   bool
	triggerCh chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// New returns a poller for path. A non-positive interval uses one minute.
func New(loader Loader, path string, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		loader:    loader,
		path:      path,
		interval:  interval,
		log:       log,
		status:    Status{Path: path},
		triggerCh: make(chan struct{}, 1),
	}
}

// Start launches the polling goroutine. It is a no-op when already running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	go p.loop(p.stopCh, p.doneCh)
}

// Stop halts polling and waits for the goroutine to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	done := p.doneCh
	p.mu.Unlock()
	<-done
}

// Refresh requests an immediate check without waiting for the ticker.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A check is already pending.
	}
}

// Status returns a copy of the current status.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.check()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.check()
		case <-p.triggerCh:
			p.check()
		}
	}
}

// check reloads the file if it changed since the last successful load.
func (p *Poller) check() {
	info, err := os.Stat(p.path)
	if err != nil {
		p.fail(fmt.Errorf("stat terms file: %w", err))
		return
	}

	p.mu.Lock()
	unchanged := info.ModTime().Equal(p.status.ModTime) && p.status.State != StateError
	if !unchanged {
		p.status.State = StateRunning
	}
	p.mu.Unlock()
	if unchanged {
		return
	}

	if err := p.loader.Load(p.path); err != nil {
		p.fail(err)
		return
	}

	p.mu.Lock()
	p.status.State = StateIdle
	p.status.Error = nil
	p.status.ModTime = info.ModTime()
	p.status.LastSync = time.Now()
	p.mu.Unlock()
	p.log.Info("terms reloaded", zap.String("path", p.path))
}

func (p *Poller) fail(err error) {
	p.mu.Lock()
	p.status.State = StateError
	p.status.Error = err
	p.mu.Unlock()
	p.log.Warn("terms reload failed", zap.String("path", p.path), zap.Error(err))
}
