package temporal

import (
	"math"

	"github.com/ajitpratap0/strtemporal/pkg/strptime"
)

// ticksPerSecond returns the number of unit ticks in one second.
func (u TimeUnit) ticksPerSecond() int64 {
	switch u {
	case Microseconds:
		return 1_000_000
	case Milliseconds:
		return 1_000
	default:
		return 1_000_000_000
	}
}

// transform turns a calendar value into ticks since the epoch. It reports
// false when the instant does not fit in int64 ticks.
type transform func(strptime.DateTime) (int64, bool)

func transformFor(u TimeUnit) transform {
	perSecond := u.ticksPerSecond()
	nanosPerTick := int64(1_000_000_000) / perSecond
	return func(dt strptime.DateTime) (int64, bool) {
		return joinTicks(dt.EpochSeconds(), int64(dt.Nanosecond)/nanosPerTick, perSecond)
	}
}

// joinTicks returns sec*perSecond+sub, or false on overflow.
func joinTicks(sec, sub, perSecond int64) (int64, bool) {
	limit := math.MaxInt64/perSecond - 1
	if sec > limit || sec < -limit {
		return 0, false
	}
	return sec*perSecond + sub, true
}

// splitTicks is the inverse of joinTicks with 0 <= sub < perSecond.
func splitTicks(v, perSecond int64) (sec, sub int64) {
	sec = v / perSecond
	sub = v % perSecond
	if sub < 0 {
		sec--
		sub += perSecond
	}
	return sec, sub
}
