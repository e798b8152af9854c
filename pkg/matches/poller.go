package matches

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// DefaultPollInterval is how often the poller reloads fixtures.
const DefaultPollInterval = 60 * time.Second

// Source is where the poller gets fixtures. *Client implements it.
type Source interface {
	LiveFixtures(ctx context.Context) ([]Fixture, error)
}

var _ Source = (*Client)(nil)

// Snapshot is what the poller last saw.
type Snapshot struct {
	Fixtures  []Fixture
	UpdatedAt time.Time // time of the last successful load
	Err       error     // error of the last load, nil if it succeeded
}

// Poller reloads fixtures on an interval. A failed load keeps the previous
// fixtures and records the error.
type Poller struct {
	Source   Source
	Logger   *slog.Logger
	Interval time.Duration
	Clock    clockwork.Clock

	// OnUpdate, if set, receives the fixtures after every successful load.
	OnUpdate func([]Fixture)

	mu   sync.RWMutex
	snap Snapshot

	ctx    context.Context
	cancel context.CancelFunc
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewPoller creates a poller. A non-positive interval uses
// DefaultPollInterval.
func NewPoller(source Source, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		Source:   source,
		Logger:   slogx.OrDefault(logger),
		Interval: interval,
		Clock:    clockwork.NewRealClock(),
		ctx:      ctx,
		cancel:   cancel,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start loads immediately and then every Interval until Stop.
func (p *Poller) Start() {
	go p.run()
	p.Logger.Info("fixtures poller started", "interval", p.Interval)
}

// Stop cancels any in-flight load and waits for the worker to exit.
func (p *Poller) Stop() {
	p.cancel()
	close(p.stopCh)
	<-p.doneCh
	p.Logger.Info("fixtures poller stopped")
}

// Snapshot returns the current fixtures and the outcome of the last load.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.snap
	s.Fixtures = append([]Fixture(nil), p.snap.Fixtures...)
	return s
}

// Load fetches once and updates the snapshot.
func (p *Poller) Load(ctx context.Context) error {
	fixtures, err := p.Source.LiveFixtures(ctx)

	p.mu.Lock()
	p.snap.Err = err
	if err == nil {
		p.snap.Fixtures = fixtures
		p.snap.UpdatedAt = p.Clock.Now()
	}
	p.mu.Unlock()

	if err != nil {
		p.Logger.Warn("failed to load fixtures", "err", err)
		return err
	}

	p.Logger.Debug("fixtures loaded", "count", len(fixtures))
	if p.OnUpdate != nil {
		p.OnUpdate(fixtures)
	}
	return nil
}

func (p *Poller) run() {
	defer close(p.doneCh)

	ticker := p.Clock.NewTicker(p.Interval)
	defer ticker.Stop()

	_ = p.Load(p.ctx)

	for {
		select {
		case <-ticker.Chan():
			_ = p.Load(p.ctx)
		case <-p.stopCh:
			return
		}
	}
}
