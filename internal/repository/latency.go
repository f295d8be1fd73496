package repository

import (
	"math/rand"
	"time"
)

// Latency sleeps for a uniform random duration in [200ms, 500ms),
// modeling the network variance of the hosted client. The sleep
// always runs to completion; in-flight operations cannot be aborted.
func Latency() {
	time.Sleep(time.Duration(200+rand.Int63n(300)) * time.Millisecond)
}

// NoLatency disables the simulated delay. Used by tests and callers
// that wire their own timeout policy.
func NoLatency() {}
