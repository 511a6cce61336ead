package autosave

import "time"

type phase int

const (
	phaseIdle phase = iota
	phasePending
)

// Debouncer is the clock-free core of the coordinator: Idle or
// Pending(deadline, latest). Callers supply the current time.
type Debouncer[T any] struct {
	delay    time.Duration
	phase    phase
	deadline time.Time
	latest   T
	hasValue bool
	seen     bool
}

func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{delay: delay}
}

// Observe records a new snapshot. The first snapshot after construction or
// Detach is the value already persisted, so it is remembered but not scheduled.
func (d *Debouncer[T]) Observe(v T, now time.Time) (deadline time.Time, scheduled bool) {
	d.latest = v
	d.hasValue = true

	if !d.seen {
		d.seen = true
		return time.Time{}, false
	}

	d.phase = phasePending
	d.deadline = now.Add(d.delay)
	return d.deadline, true
}

// Due returns the latest snapshot and returns to Idle once the deadline has passed.
func (d *Debouncer[T]) Due(now time.Time) (T, bool) {
	var zero T
	if d.phase != phasePending || now.Before(d.deadline) {
		return zero, false
	}
	d.phase = phaseIdle
	return d.latest, true
}

// Flush drops any pending deadline and returns the latest known snapshot,
// whether or not a save was pending.
func (d *Debouncer[T]) Flush() (T, bool) {
	d.phase = phaseIdle
	return d.latest, d.hasValue
}

func (d *Debouncer[T]) Pending() bool {
	return d.phase == phasePending
}

func (d *Debouncer[T]) Deadline() (time.Time, bool) {
	return d.deadline, d.phase == phasePending
}

// Detach forgets everything. The next snapshot counts as the first one again.
func (d *Debouncer[T]) Detach() {
	var zero T
	d.phase = phaseIdle
	d.deadline = time.Time{}
	d.latest = zero
	d.hasValue = false
	d.seen = false
}
