package matches

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultPageSize        = 3
	DefaultAdvanceInterval = 2 * time.Second
)

// Carousel pages through fixtures and advances one page per interval,
// wrapping back to the first. It only advances with more than one page
// and while not paused. Manual navigation pauses it.
type Carousel struct {
	clock    clockwork.Clock
	pageSize int
	interval time.Duration

	mu       sync.Mutex
	fixtures []Fixture
	page     int
	paused   bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewCarousel creates a stopped carousel. Zero values pick the defaults
// and a nil clock uses the real one.
func NewCarousel(clock clockwork.Clock, pageSize int, interval time.Duration) *Carousel {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if interval <= 0 {
		interval = DefaultAdvanceInterval
	}
	return &Carousel{
		clock:    clock,
		pageSize: pageSize,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the auto-advance loop until Stop.
func (c *Carousel) Start() {
	go c.run()
}

func (c *Carousel) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// SetFixtures replaces the fixtures, keeping the page if it still exists.
func (c *Carousel) SetFixtures(fixtures []Fixture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fixtures = append([]Fixture(nil), fixtures...)
	c.page = c.clampLocked(c.page)
}

// Tick is one auto-advance step.
func (c *Carousel) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	pages := c.pagesLocked()
	if c.paused || pages <= 1 {
		return
	}
	c.page = (c.page + 1) % pages
}

// Next moves forward one page, stopping at the last, and pauses.
func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampLocked(c.page + 1)
	c.paused = true
}

// Prev moves back one page, stopping at the first, and pauses.
func (c *Carousel) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampLocked(c.page - 1)
	c.paused = true
}

// Goto jumps to page, clamped to the valid range, and pauses.
func (c *Carousel) Goto(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampLocked(page)
	c.paused = true
}

func (c *Carousel) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

func (c *Carousel) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

func (c *Carousel) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Page returns the current zero-based page.
func (c *Carousel) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Carousel) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagesLocked()
}

// Visible returns the fixtures on the current page.
func (c *Carousel) Visible() []Fixture {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := c.page * c.pageSize
	if start >= len(c.fixtures) {
		return nil
	}
	end := min(start+c.pageSize, len(c.fixtures))
	return append([]Fixture(nil), c.fixtures[start:end]...)
}

func (c *Carousel) pagesLocked() int {
	return (len(c.fixtures) + c.pageSize - 1) / c.pageSize
}

func (c *Carousel) clampLocked(page int) int {
	last := c.pagesLocked() - 1
	return max(0, min(page, last))
}

func (c *Carousel) run() {
	defer close(c.doneCh)

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			c.Tick()
		case <-c.stopCh:
			return
		}
	}
}
