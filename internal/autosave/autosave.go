// Package autosave decouples "project changed" from "project persisted".
//
// A Coordinator collects snapshots and, after a quiet period with no further
// snapshots, saves the latest one exactly once. SaveNow flushes immediately.
package autosave

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultDelay is the quiescence window used when none is configured.
const DefaultDelay = 2 * time.Second

type options struct {
	clock   clockwork.Clock
	logger  *zap.Logger
	onError func(error)
}

type Option func(*options)

func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// OnError is called with every error returned by the save callback.
func OnError(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

type Coordinator[T any] struct {
	mu      sync.Mutex
	deb     *Debouncer[T]
	timer   clockwork.Timer
	stopped bool

	// saveMu keeps two saves from running the callback at once.
	saveMu sync.Mutex
	save   func(T) error

	clock   clockwork.Clock
	log     *zap.Logger
	onError func(error)
}

func New[T any](delay time.Duration, save func(T) error, opts ...Option) *Coordinator[T] {
	o := options{
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Coordinator[T]{
		deb:     NewDebouncer[T](delay),
		save:    save,
		clock:   o.clock,
		log:     o.logger,
		onError: o.onError,
	}
}

// Observe hands the coordinator a new snapshot and restarts the quiet period.
func (c *Coordinator[T]) Observe(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	now := c.clock.Now()
	deadline, scheduled := c.deb.Observe(v, now)
	if !scheduled {
		return
	}

	c.stopTimerLocked()
	c.timer = c.clock.AfterFunc(deadline.Sub(now), func() { c.fire(deadline) })
}

// fire runs when a timer elapses. A timer that was superseded by a later
// snapshot finds its deadline already moved and does nothing.
func (c *Coordinator[T]) fire(at time.Time) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	v, ok := c.deb.Due(at)
	if ok {
		c.timer = nil
	}
	c.mu.Unlock()

	if ok {
		c.log.Debug("autosave fired")
		_ = c.run(v)
	}
}

// SaveNow cancels any pending timer and saves the latest snapshot right away.
// It saves even when nothing was pending.
func (c *Coordinator[T]) SaveNow() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopTimerLocked()
	v, ok := c.deb.Flush()
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return c.run(v)
}

// Flush saves the latest snapshot right away, but only when a save is
// scheduled. The first snapshot alone is never written.
func (c *Coordinator[T]) Flush() error {
	c.mu.Lock()
	if c.stopped || !c.deb.Pending() {
		c.mu.Unlock()
		return nil
	}
	c.stopTimerLocked()
	v, _ := c.deb.Flush()
	c.mu.Unlock()

	return c.run(v)
}

// Pending reports whether a save is scheduled.
func (c *Coordinator[T]) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deb.Pending()
}

// Stop cancels the pending timer. Snapshots observed afterwards are ignored.
func (c *Coordinator[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.stopTimerLocked()
	c.deb.Detach()
}

func (c *Coordinator[T]) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator[T]) run(v T) error {
	c.saveMu.Lock()
	err := c.save(v)
	c.saveMu.Unlock()

	if err != nil {
		c.log.Warn("autosave failed", zap.Error(err))
		if c.onError != nil {
			c.onError(err)
		}
	}
	return err
}
