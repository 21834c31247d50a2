package orchestrator

import "sync/atomic"

// StopToken is the cooperative stop signal for a running goal. The loop polls
// it only between iterations: an in-flight model or executor call always runs
// to completion before the stop is honored.
type StopToken struct {
	flag atomic.Bool
}

func NewStopToken() *StopToken {
	return &StopToken{}
}

func (t *StopToken) Stop() {
	t.flag.Store(true)
}

func (t *StopToken) Stopped() bool {
	return t.flag.Load()
}

// Reset clears the token before a new run.
func (t *StopToken) Reset() {
	t.flag.Store(false)
}
