package common

import (
	"sync/atomic"
	"time"
)

// Clock is the time source of the chain, in unix seconds
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock only moves when told to. Useful to replay history and for tests
type ManualClock struct {
	now atomic.Uint64
}

func NewManualClock(now uint64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(now)
	return c
}

func (c *ManualClock) Now() uint64 {
	return c.now.Load()
}

func (c *ManualClock) Set(now uint64) {
	c.now.Store(now)
}

// Advance moves the clock forward by seconds and returns the new time
func (c *ManualClock) Advance(seconds uint64) uint64 {
	return c.now.Add(seconds)
}
