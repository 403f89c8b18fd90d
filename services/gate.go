package services

import "sync/atomic"

// flightGate admits at most one cart-touching operation at a time. A
// caller that loses the race is dropped, never queued.
type flightGate struct {
	busy atomic.Bool
}

func (g *flightGate) tryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *flightGate) release() {
	g.busy.Store(false)
}
