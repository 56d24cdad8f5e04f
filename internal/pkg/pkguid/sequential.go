package pkguid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// DefaultClockSkew is how far in the future a decoded timestamp may be
// before Timestamp rejects it.
const DefaultClockSkew = time.Minute

// ErrInvalidTimestamp is returned by Timestamp for GUIDs whose timestamp
// segment could not have been produced by a Sequential generator.
var ErrInvalidTimestamp = errors.New("cannot extract a valid timestamp")

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Option configures a Sequential generator.
type Option func(*Sequential)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Sequential) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithClockSkew sets the future tolerance used by Timestamp.
func WithClockSkew(d time.Duration) Option {
	return func(s *Sequential) {
		if d >= 0 {
			s.skew = d
		}
	}
}

// WithSeedResolver replaces the default unbounded resolver.
func WithSeedResolver(r *SeedResolver) Option {
	return func(s *Sequential) {
		if r != nil {
			s.seeds = r
		}
	}
}

// Sequential issues time-ordered GUIDs.
//
// Generation is serialized by a single lock across all seeds, and every
// GUID carries a timestamp strictly greater than the one issued before it.
// When the clock has not moved since the previous GUID the generator
// re-reads it until it does; when it has moved backwards the previous
// timestamp is bumped by one tick. GUIDs sharing a seed therefore never
// share a timestamp, even when other seeds are interleaved between them.
//
// Timestamp uses its own lock and never waits on generation.
type Sequential struct {
	clock Clock
	seeds *SeedResolver
	skew  time.Duration

	writeMu   sync.Mutex
	lastTicks int64

	readMu sync.Mutex
}

// NewSequential creates a generator. Without options it reads the system
// clock, memoizes every string seed and tolerates one minute of skew.
func NewSequential(opts ...Option) *Sequential {
	s := &Sequential{
		clock: realClock{},
		seeds: &SeedResolver{cache: newMapCache()},
		skew:  DefaultClockSkew,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var defaultSequential = sync.OnceValue(func() *Sequential {
	return NewSequential()
})

// Default returns the process-wide generator.
func Default() *Sequential {
	return defaultSequential()
}

// New returns a GUID with a fresh random seed.
func (s *Sequential) New() GUID {
	return s.NewFromGUID(s.seeds.Random())
}

// NewFromString returns a GUID seeded from a string. See SeedResolver.Resolve.
func (s *Sequential) NewFromString(seed string) (GUID, error) {
	resolved, err := s.seeds.Resolve(seed)
	if err != nil {
		return Nil, err
	}
	return s.NewFromGUID(resolved), nil
}

// NewFromGUID returns a GUID that keeps the seed segment of seed.
func (s *Sequential) NewFromGUID(seed GUID) GUID {
	segment := seed.Seed()
	ticks := s.nextTicks()

	var id GUID
	binary.BigEndian.PutUint64(id[:timestampSize], uint64(ticks))
	copy(id[seedOffset:], segment[:])
	return id
}

// Generate implements StringID.
func (s *Sequential) Generate() string {
	return s.New().String()
}

func (s *Sequential) nextTicks() int64 {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ticks := Ticks(s.clock.Now())
	for ticks == s.lastTicks {
		runtime.Gosched()
		ticks = Ticks(s.clock.Now())
	}

	if ticks < s.lastTicks {
		behind := time.Duration(s.lastTicks-ticks) * TickDuration
		if behind > s.skew {
			// Pinned GUIDs fail Timestamp until the clock catches up.
			slog.Error("sequential guid clock moved backwards beyond skew",
				"last_ticks", s.lastTicks,
				"ticks", ticks,
				"behind", behind,
				"skew", s.skew,
			)
		} else {
			slog.Warn("sequential guid clock moved backwards",
				"last_ticks", s.lastTicks,
				"ticks", ticks,
				"behind", behind,
			)
		}
		ticks = s.lastTicks + 1
	}

	s.lastTicks = ticks
	return ticks
}

// Timestamp extracts the generation time of id. It fails when the decoded
// time is not after Epoch or lies further in the future than the
// configured clock skew, which catches most GUIDs that did not come from
// this generator.
func (s *Sequential) Timestamp(id GUID) (time.Time, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()

	t := DecodeTimestamp(id.timestampBytes())
	if !t.After(Epoch) || t.After(s.clock.Now().Add(s.skew)) {
		return time.Time{}, fmt.Errorf("%w from %s", ErrInvalidTimestamp, id)
	}

	return t, nil
}
