package search

import (
	"sync"
	"time"

	"thrift-deals-service/internal/domain"
)

// Debouncer coalesces rapid calls into one: each Do cancels any pending
// invocation and schedules a fresh one, so only the last call within the
// idle window runs. Cancellation is explicit — the pending timer is
// stopped before a new one is armed, never left to race.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given idle window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do schedules fn after the idle window, cancelling any pending call.
// When the delay is zero or negative, fn runs synchronously.
func (d *Debouncer) Do(fn func()) {
	if d.delay <= 0 {
		fn()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Suggester drives the type-ahead dropdown: every keystroke feeds
// OnInput, and after the debounce window the engine's suggestions are
// handed to the deliver callback. A query below the minimum length
// delivers nil, which the renderer treats as "hide the dropdown".
type Suggester struct {
	engine   *Engine
	debounce *Debouncer
	deliver  func([]domain.ProductView)
}

// NewSuggester wires a suggestion pipeline to the deliver callback.
func (e *Engine) NewSuggester(delay time.Duration, deliver func([]domain.ProductView)) *Suggester {
	return &Suggester{
		engine:   e,
		debounce: NewDebouncer(delay),
		deliver:  deliver,
	}
}

// OnInput registers a keystroke. Only the last input within the idle
// window is evaluated; earlier pending evaluations are cancelled.
func (s *Suggester) OnInput(text string) {
	s.debounce.Do(func() {
		s.deliver(s.engine.Suggest(text))
	})
}

// Close cancels any pending evaluation.
func (s *Suggester) Close() {
	s.debounce.Stop()
}
