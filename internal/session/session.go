// Package session holds the currently selected project and orchestrates its
// loading, optimistic in-memory updates and background persistence.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/emilianohg/storyboard/internal/autosave"
	"github.com/emilianohg/storyboard/internal/models"
	"github.com/emilianohg/storyboard/internal/repository"
	"github.com/emilianohg/storyboard/internal/schema"
)

var (
	// ErrNoProject is returned by Update and SaveNow when nothing is loaded.
	ErrNoProject = errors.New("no project loaded")

	// ErrStale is returned by a Select whose result arrived after another
	// selection was made. The result has been discarded.
	ErrStale = errors.New("project selection changed while loading")
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Store is the part of the project repository a session needs.
type Store interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Put(ctx context.Context, p *models.Project) error
}

// Snapshot is a copy of the session state. Project is nil unless State is Ready.
type Snapshot struct {
	ID      string
	State   State
	Project *models.Project
	Err     error
}

// ErrText is the error message shown to the user, or "".
func (s Snapshot) ErrText() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

type Option func(*Session)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.log = logger }
}

// WithAutosave routes persistence through a debounced coordinator instead
// of writing every update through immediately.
func WithAutosave(delay time.Duration) Option {
	return func(s *Session) {
		s.autosave = true
		s.delay = delay
	}
}

type Session struct {
	store Store
	clock clockwork.Clock
	log   *zap.Logger

	autosave bool
	delay    time.Duration

	mu      sync.Mutex
	gen     uint64
	id      string
	state   State
	project *models.Project
	err     error
	saver   *autosave.Coordinator[*models.Project]
	subs    []chan Snapshot
	closed  bool

	writes sync.WaitGroup
}

func New(store Store, opts ...Option) *Session {
	s := &Session{
		store: store,
		clock: clockwork.NewRealClock(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select makes id the current project and loads it. An empty id clears the
// selection. A load that finishes after a newer Select is discarded and
// reported as ErrStale.
func (s *Session) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.id = id
	s.project = nil
	s.err = nil
	s.detachLocked()
	if id == "" {
		s.state = Idle
		s.publishLocked()
		s.mu.Unlock()
		return nil
	}
	s.state = Loading
	s.publishLocked()
	s.mu.Unlock()

	p, err := s.store.GetByID(ctx, id)
	if err == nil && p == nil {
		err = repository.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Info("dropping stale project load", zap.String("project_id", id))
		return ErrStale
	}

	if err != nil {
		err = fmt.Errorf("load project %s: %w", id, err)
		s.log.Error("project load failed", zap.String("project_id", id), zap.Error(err))
		s.state = Failed
		s.err = err
		s.publishLocked()
		return err
	}

	s.project = schema.Migrate(p)
	s.state = Ready
	if s.autosave {
		s.saver = s.newSaver(gen)
		s.saver.Observe(s.project)
	}
	s.publishLocked()
	return nil
}

// Reload loads the current id again, for example after a failed load.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	id := s.id
	s.mu.Unlock()
	return s.Select(ctx, id)
}

// Update applies mutate to a copy of the current project, stamps UpdatedAt
// and publishes the result before it is persisted. A failed write is
// reported in the snapshot and never rolls the change back.
func (s *Session) Update(mutate func(p *models.Project)) error {
	return s.Apply(func(p *models.Project) error {
		mutate(p)
		return nil
	})
}

// Apply is Update for edits that can fail. When mutate returns an error the
// copy is discarded and the error returned: nothing is stamped, published
// or saved.
func (s *Session) Apply(mutate func(p *models.Project) error) error {
	s.mu.Lock()
	if s.project == nil || s.closed {
		s.mu.Unlock()
		return ErrNoProject
	}

	next := s.project.Clone()
	if err := mutate(next); err != nil {
		s.mu.Unlock()
		return err
	}
	next.UpdatedAt = s.clock.Now().UTC()
	s.project = next
	s.publishLocked()

	gen := s.gen
	saver := s.saver
	s.mu.Unlock()

	if saver != nil {
		saver.Observe(next)
		return nil
	}

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.write(gen, next); err != nil {
			s.fail(gen, err)
		}
	}()
	return nil
}

// SaveNow persists the current project synchronously, cancelling any
// pending autosave.
func (s *Session) SaveNow() error {
	s.mu.Lock()
	if s.project == nil || s.closed {
		s.mu.Unlock()
		return ErrNoProject
	}
	gen := s.gen
	p := s.project
	saver := s.saver
	s.mu.Unlock()

	if saver != nil {
		return saver.SaveNow()
	}

	if err := s.write(gen, p); err != nil {
		s.fail(gen, err)
		return err
	}
	return nil
}

// Flush writes edits still waiting for the autosave delay. Unlike SaveNow it
// does nothing when no save is pending, so a project that was only viewed
// is never written back.
func (s *Session) Flush() error {
	s.mu.Lock()
	saver := s.saver
	closed := s.closed
	s.mu.Unlock()

	if saver == nil || closed {
		return nil
	}
	return saver.Flush()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that always holds the most recent snapshot.
// Slow readers skip intermediate snapshots. The channel is closed by Close.
func (s *Session) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	ch <- s.snapshotLocked()
	s.subs = append(s.subs, ch)
	return ch
}

// Close cancels any pending autosave and waits for in-flight writes.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.detachLocked()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	s.writes.Wait()
	for _, ch := range subs {
		close(ch)
	}
}

func (s *Session) newSaver(gen uint64) *autosave.Coordinator[*models.Project] {
	return autosave.New(s.delay,
		func(p *models.Project) error { return s.write(gen, p) },
		autosave.WithClock(s.clock),
		autosave.WithLogger(s.log.Named("autosave")),
		autosave.OnError(func(err error) { s.fail(gen, err) }),
	)
}

func (s *Session) detachLocked() {
	if s.saver != nil {
		s.saver.Stop()
		s.saver = nil
	}
}

// write stores a copy of p, since Put stamps the value it is handed and
// published snapshots are shared.
func (s *Session) write(gen uint64, p *models.Project) error {
	if err := s.store.Put(context.Background(), p.Clone()); err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen && s.state == Ready && s.err != nil {
		s.err = nil
		s.publishLocked()
	}
	return nil
}

func (s *Session) fail(gen uint64, err error) {
	s.log.Error("project save failed", zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.err = err
	s.publishLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{ID: s.id, State: s.state, Err: s.err}
	if s.project != nil {
		snap.Project = s.project.Clone()
	}
	return snap
}

func (s *Session) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
