package pairing

import (
	"math/rand"
	"time"
)

// NowSource is the engine's only notion of wall-clock time — a capability
// interface so tests can inject a controlled, possibly backward-moving,
// clock without touching the system clock.
type NowSource interface {
	NowSecs() (int64, error)
}

// SystemNowSource reads the real wall clock.
type SystemNowSource struct{}

func (SystemNowSource) NowSecs() (int64, error) {
	return time.Now().UTC().Unix(), nil
}

// RandSource draws a uniform integer in [lo, hi] inclusive. Tests pass a
// deterministic stub to force a specific code or a specific probe branch.
type RandSource interface {
	GenRange(lo, hi int32) int32
	GenBool() bool
}

// SystemRandSource uses the process-global, unseeded math/rand source —
// codes must be unguessable, not cryptographically unpredictable; this
// mirrors the thread-local generator the engine is modeled on.
type SystemRandSource struct{}

func (SystemRandSource) GenRange(lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	return lo + int32(rand.Intn(int(hi-lo+1)))
}

func (SystemRandSource) GenBool() bool {
	return rand.Intn(2) == 0
}
