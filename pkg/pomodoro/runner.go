package pomodoro

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrRunnerClosed = errors.New("pomodoro runner is closed")

// Hooks run from the caller's goroutine for commands and from the tick
// goroutine for ticks. They are delivered one at a time, in the order the
// state changed, and must not call back into the Runner's commands.
type Hooks struct {
	OnChange   func(State)
	OnComplete func(Completion)
}

// Runner owns one State and at most one live ticker. The ticker runs only
// while the state is running and is stopped on pause, mode change, reset,
// completion and Close.
type Runner struct {
	// deliverMu is held from a state change until its hooks return
	deliverMu sync.Mutex

	mu     sync.Mutex
	clock  clockwork.Clock
	hooks  Hooks
	state  State
	ticker clockwork.Ticker
	done   chan struct{}
	closed bool
}

func NewRunner(clock clockwork.Clock, hooks Hooks) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{
		clock: clock,
		hooks: hooks,
		state: NewState(),
	}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) SelectMode(m Mode) error {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	next, err := r.state.SelectMode(m)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.stopTickerLocked()
	r.state = next
	r.mu.Unlock()

	r.notify(next, nil)
	return nil
}

func (r *Runner) Toggle() error {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	next := r.state.Toggle()
	r.state = next
	if next.Running {
		r.startTickerLocked()
	} else {
		r.stopTickerLocked()
	}
	r.mu.Unlock()

	r.notify(next, nil)
	return nil
}

func (r *Runner) Reset() error {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	r.stopTickerLocked()
	next := r.state.Reset()
	r.state = next
	r.mu.Unlock()

	r.notify(next, nil)
	return nil
}

func (r *Runner) Associate(taskID string) error {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	next := r.state.Associate(taskID)
	r.state = next
	r.mu.Unlock()

	r.notify(next, nil)
	return nil
}

// Close stops the ticker. It is safe to call more than once and does not
// wait for a hook that is still running.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTickerLocked()
	r.state.Running = false
	r.closed = true
}

func (r *Runner) startTickerLocked() {
	r.stopTickerLocked()

	ticker := r.clock.NewTicker(time.Second)
	done := make(chan struct{})
	r.ticker = ticker
	r.done = done

	go r.loop(ticker, done)
}

func (r *Runner) stopTickerLocked() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.done)
	r.ticker = nil
	r.done = nil
}

func (r *Runner) loop(ticker clockwork.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.Chan():
			if !r.tick(done) {
				return
			}
		}
	}
}

// tick returns false once this ticker generation is finished
func (r *Runner) tick(done chan struct{}) bool {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.mu.Lock()
	if r.done != done {
		// stale tick from a ticker that has already been replaced
		r.mu.Unlock()
		return false
	}
	next, completion := r.state.Tick()
	r.state = next
	alive := next.Running
	if !alive {
		r.stopTickerLocked()
	}
	r.mu.Unlock()

	r.notify(next, completion)
	return alive
}

func (r *Runner) notify(s State, completion *Completion) {
	if r.hooks.OnChange != nil {
		r.hooks.OnChange(s)
	}
	if completion != nil && r.hooks.OnComplete != nil {
		r.hooks.OnComplete(*completion)
	}
}
