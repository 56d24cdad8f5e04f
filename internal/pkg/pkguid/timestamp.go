package pkguid

import (
	"encoding/binary"
	"time"
)

const (
	// TickDuration is the resolution of an encoded timestamp.
	TickDuration = 100 * time.Nanosecond

	ticksPerSecond = int64(time.Second / TickDuration)
)

// Epoch is the zero point of encoded timestamps.
var Epoch = time.Unix(0, 0).UTC()

// Ticks returns the number of 100ns ticks between Epoch and t, rounded
// towards negative infinity.
func Ticks(t time.Time) int64 {
	return t.Unix()*ticksPerSecond + int64(t.Nanosecond())/int64(TickDuration)
}

// FromTicks converts ticks since Epoch back to a UTC time.
func FromTicks(ticks int64) time.Time {
	sec := ticks / ticksPerSecond
	rem := ticks % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*int64(TickDuration)).UTC()
}

// EncodeTimestamp writes t as big-endian ticks since Epoch.
func EncodeTimestamp(t time.Time) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(Ticks(t)))
	return b
}

// DecodeTimestamp reverses EncodeTimestamp. It never fails; callers decide
// whether the result is plausible.
func DecodeTimestamp(b [8]byte) time.Time {
	return FromTicks(int64(binary.BigEndian.Uint64(b[:])))
}
