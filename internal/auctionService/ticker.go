package auction

import (
	"sync"
	"time"
)

// Ticker is the engine's clock source. A fixed-interval clock and an
// externally signalled clock are interchangeable behind it.
type Ticker interface {
	// Ticks delivers one value per tick.
	Ticks() <-chan struct{}
	// Stop shuts the clock down; Ticks delivers nothing afterwards.
	Stop()
}

// IntervalTicker fires at a fixed wall-clock interval.
type IntervalTicker struct {
	ch   chan struct{}
	done chan struct{}
	t    *time.Ticker
	once sync.Once
}

// NewIntervalTicker starts a ticker firing every d.
func NewIntervalTicker(d time.Duration) *IntervalTicker {
	it := &IntervalTicker{
		ch:   make(chan struct{}),
		done: make(chan struct{}),
		t:    time.NewTicker(d),
	}
	go it.run()
	return it
}

func (it *IntervalTicker) run() {
	for {
		select {
		case <-it.done:
			return
		case <-it.t.C:
			select {
			case it.ch <- struct{}{}:
			case <-it.done:
				return
			}
		}
	}
}

// Ticks implements Ticker.
func (it *IntervalTicker) Ticks() <-chan struct{} {
	return it.ch
}

// Stop implements Ticker.
func (it *IntervalTicker) Stop() {
	it.once.Do(func() {
		it.t.Stop()
		close(it.done)
	})
}

// SignalTicker fires when something external calls Trigger, such as
// stdin input in the server binary.
type SignalTicker struct {
	ch   chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSignalTicker creates a ticker that only fires on Trigger.
func NewSignalTicker() *SignalTicker {
	return &SignalTicker{
		ch:   make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Trigger fires one tick. It blocks until the tick is consumed, so the
// caller knows the sweep has at least started. Returns false after
// Stop.
func (st *SignalTicker) Trigger() bool {
	select {
	case st.ch <- struct{}{}:
		return true
	case <-st.done:
		return false
	}
}

// Ticks implements Ticker.
func (st *SignalTicker) Ticks() <-chan struct{} {
	return st.ch
}

// Stop implements Ticker.
func (st *SignalTicker) Stop() {
	st.once.Do(func() {
		close(st.done)
	})
}
