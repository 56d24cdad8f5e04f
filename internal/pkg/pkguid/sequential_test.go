package pkguid

import (
	"encoding/binary"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

type stepClock struct {
	mu    sync.Mutex
	times []time.Time
	calls int
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.calls
	if idx >= len(c.times) {
		idx = len(c.times) - 1
	}
	c.calls++
	return c.times[idx]
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func guidWithTicks(ticks int64) GUID {
	var g GUID
	binary.BigEndian.PutUint64(g[:8], uint64(ticks))
	copy(g[8:], "Microsof")
	return g
}

var testNow = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func TestNewSameTickForcesClockAdvance(t *testing.T) {
	clock := &stepClock{times: []time.Time{
		testNow,
		testNow,
		testNow,
		testNow.Add(TickDuration),
	}}
	gen := NewSequential(WithClock(clock))

	first, err := gen.NewFromString("Microsoft")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	second, err := gen.NewFromString("Microsoft")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct guids, got %s twice", first)
	}
	if second.Ticks() != first.Ticks()+1 {
		t.Fatalf("expected second ticks %d, got %d", first.Ticks()+1, second.Ticks())
	}
	if clock.calls != 4 {
		t.Fatalf("expected clock to be re-read until it advanced, got %d reads", clock.calls)
	}
}

func TestNewInterleavedSeedsNeverRepeatTick(t *testing.T) {
	clock := &stepClock{times: []time.Time{
		testNow,
		testNow,
		testNow.Add(TickDuration),
		testNow.Add(TickDuration),
		testNow.Add(2 * TickDuration),
	}}
	gen := NewSequential(WithClock(clock))

	a1, _ := gen.NewFromString("seed-one")
	b, _ := gen.NewFromString("seed-two")
	a2, _ := gen.NewFromString("seed-one")

	if a1.Ticks() >= b.Ticks() || b.Ticks() >= a2.Ticks() {
		t.Fatalf("expected increasing ticks, got %d %d %d", a1.Ticks(), b.Ticks(), a2.Ticks())
	}
	if a1 == a2 {
		t.Fatalf("expected distinct guids for the same seed")
	}
}

func TestNewClockRegressionStaysMonotonic(t *testing.T) {
	clock := &stepClock{times: []time.Time{
		testNow.Add(time.Second),
		testNow,
	}}
	gen := NewSequential(WithClock(clock))

	first, _ := gen.NewFromString("asdfjklm")
	second, _ := gen.NewFromString("asdfjklm")
	third, _ := gen.NewFromString("asdfjklm")

	if second.Ticks() != first.Ticks()+1 || third.Ticks() != second.Ticks()+1 {
		t.Fatalf("expected pinned ticks, got %d %d %d", first.Ticks(), second.Ticks(), third.Ticks())
	}
}

func TestTimestampAfterClockRegression(t *testing.T) {
	cases := []struct {
		name    string
		jump    time.Duration
		wantErr bool
	}{
		{"within skew", 500 * time.Millisecond, false},
		{"beyond skew", time.Hour, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := &stepClock{times: []time.Time{testNow.Add(tc.jump), testNow}}
			gen := NewSequential(WithClock(clock), WithClockSkew(time.Second))

			first := gen.New()
			pinned := gen.New()
			if pinned.Ticks() != first.Ticks()+1 {
				t.Fatalf("expected pinned ticks %d, got %d", first.Ticks()+1, pinned.Ticks())
			}

			_, err := gen.Timestamp(pinned)
			if tc.wantErr && !errors.Is(err, ErrInvalidTimestamp) {
				t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Timestamp: %v", err)
			}
		})
	}
}

func TestNewSeedDeterminism(t *testing.T) {
	gen := NewSequential()

	a, err := gen.NewFromString("Microsoft")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	b, err := gen.NewFromString("Microsoft")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}

	want := []byte{0x4D, 0x69, 0x63, 0x72, 0x6F, 0x73, 0x6F, 0x66}
	if string(a[8:]) != string(want) || string(b[8:]) != string(want) {
		t.Fatalf("unexpected seed segments %x and %x", a[8:], b[8:])
	}
	if a.Ticks() == b.Ticks() {
		t.Fatalf("expected timestamp segments to differ")
	}
}

func TestNewFromStringShortSeed(t *testing.T) {
	gen := NewSequential()

	for _, seed := range []string{"", "a", "as", "asd", "asdf", "asdfj", "asdfjk", "asdfjkl"} {
		if _, err := gen.NewFromString(seed); !errors.Is(err, ErrSeedTooShort) {
			t.Fatalf("NewFromString(%q): expected ErrSeedTooShort, got %v", seed, err)
		}
	}

	if _, err := gen.NewFromString("asdfjklm"); err != nil {
		t.Fatalf("NewFromString(asdfjklm): %v", err)
	}
}

func TestNewFromStringLiteral(t *testing.T) {
	gen := NewSequential()
	existing := gen.New()

	got, err := gen.NewFromString(existing.String())
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	if got.Seed() != existing.Seed() {
		t.Fatalf("expected seed %x, got %x", existing.Seed(), got.Seed())
	}
	if got.Ticks() <= existing.Ticks() {
		t.Fatalf("expected newer timestamp")
	}
}

func TestNewFromGUIDKeepsSeed(t *testing.T) {
	gen := NewSequential()
	seed := MustParseGUID("42E33BA2-40B4-40E3-8834-1C341BE70486")

	got := gen.NewFromGUID(seed)
	if got.Seed() != seed.Seed() {
		t.Fatalf("expected seed %x, got %x", seed.Seed(), got.Seed())
	}
}

func TestNewMonotonicOrder(t *testing.T) {
	gen := NewSequential()

	ids := make([]GUID, 0, 10_000)
	for i := 0; i < cap(ids); i++ {
		id, err := gen.NewFromString("0B77CE03-F4C5-4204-8B32-ABA22EFB5580")
		if err != nil {
			t.Fatalf("NewFromString: %v", err)
		}
		ids = append(ids, id)
	}

	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, GUID.Compare)
	if !slices.Equal(ids, sorted) {
		t.Fatalf("expected byte order to match generation order")
	}

	for i := 1; i < len(ids); i++ {
		if ids[i].Ticks() <= ids[i-1].Ticks() {
			t.Fatalf("expected strictly increasing ticks at %d", i)
		}
	}
}

func TestNewUniqueness(t *testing.T) {
	n := 1_000_000
	if testing.Short() {
		n = 10_000
	}

	gen := NewSequential()

	t.Run("unseeded", func(t *testing.T) {
		seen := make(map[GUID]struct{}, n)
		for i := 0; i < n; i++ {
			seen[gen.New()] = struct{}{}
		}
		if len(seen) != n {
			t.Fatalf("expected %d unique guids, got %d", n, len(seen))
		}
	})

	t.Run("seeded", func(t *testing.T) {
		seen := make(map[GUID]struct{}, n)
		for i := 0; i < n; i++ {
			id, err := gen.NewFromString("asdfjklm")
			if err != nil {
				t.Fatalf("NewFromString: %v", err)
			}
			seen[id] = struct{}{}
		}
		if len(seen) != n {
			t.Fatalf("expected %d unique guids, got %d", n, len(seen))
		}
	})
}

func TestNewConcurrentSameSeed(t *testing.T) {
	gen := NewSequential()

	const workers, perWorker = 8, 1000
	results := make([][]GUID, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := gen.NewFromString("concurrent")
				if err != nil {
					t.Errorf("NewFromString: %v", err)
					return
				}
				results[w] = append(results[w], id)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[int64]struct{}, workers*perWorker)
	for _, ids := range results {
		for i, id := range ids {
			if i > 0 && id.Compare(ids[i-1]) <= 0 {
				t.Fatalf("expected per-worker order to be preserved")
			}
			seen[id.Ticks()] = struct{}{}
		}
	}
	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d distinct timestamps, got %d", workers*perWorker, len(seen))
	}
}

func TestTimestamp(t *testing.T) {
	gen := NewSequential()

	before := time.Now().UTC().Truncate(TickDuration)
	id := gen.New()
	after := time.Now().UTC()

	ts, err := gen.Timestamp(id)
	if err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
	if ts.Before(before) || ts.After(after) {
		t.Fatalf("expected timestamp within [%v, %v], got %v", before, after, ts)
	}
}

func TestTimestampBoundaries(t *testing.T) {
	gen := NewSequential(WithClock(fixedClock{now: testNow}))
	limit := Ticks(testNow.Add(DefaultClockSkew))

	cases := []struct {
		name  string
		ticks int64
		ok    bool
	}{
		{"epoch", 0, false},
		{"before epoch", -1, false},
		{"one tick after epoch", 1, true},
		{"now", Ticks(testNow), true},
		{"skew limit", limit, true},
		{"one tick past skew", limit + 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, err := gen.Timestamp(guidWithTicks(tc.ticks))
			if tc.ok {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if Ticks(ts) != tc.ticks {
					t.Fatalf("expected %d ticks, got %d", tc.ticks, Ticks(ts))
				}
				return
			}
			if !errors.Is(err, ErrInvalidTimestamp) {
				t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
			}
		})
	}
}

func TestTimestampCustomSkew(t *testing.T) {
	gen := NewSequential(WithClock(fixedClock{now: testNow}), WithClockSkew(time.Hour))

	if _, err := gen.Timestamp(guidWithTicks(Ticks(testNow.Add(30 * time.Minute)))); err != nil {
		t.Fatalf("expected 30 minutes to be tolerated, got %v", err)
	}
}

func TestTimestampRejectsRandomGUIDs(t *testing.T) {
	gen := NewSequential()

	for _, s := range []string{
		"0B77CE03-F4C5-4204-8B32-ABA22EFB5580",
		"74E6B8F3-DBE6-4ECF-8DE3-C4CE17573026",
		"0CC49837-1461-4409-ADCE-ACF85EE15AFD",
		"42E33BA2-40B4-40E3-8834-1C341BE70486",
		"9E4E69DE-EE59-448E-AC64-ED58D7F69D3A",
		"E6019C40-A734-4BD5-A247-5CE3FDB13527",
		"9DE73266-4A2C-4B26-8352-3AD57AD61BB5",
		"A7528345-ABDA-452E-8AA9-6F32C5420420",
		"B35E7CD2-AB8D-4BC0-93ED-05E4CE22F56B",
		"83D9DE21-C1A9-4B13-99C3-DF38E4D6C8D4",
	} {
		_, err := gen.Timestamp(MustParseGUID(s))
		if !errors.Is(err, ErrInvalidTimestamp) {
			t.Fatalf("Timestamp(%s): expected ErrInvalidTimestamp, got %v", s, err)
		}
		want := "cannot extract a valid timestamp from " + strings.ToLower(s)
		if err.Error() != want {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestTimestampDoesNotWaitForGeneration(t *testing.T) {
	gen := NewSequential()
	id := gen.New()

	gen.writeMu.Lock()
	defer gen.writeMu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := gen.Timestamp(id)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Timestamp: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timestamp extraction blocked on generation lock")
	}
}

func TestGenerateReturnsParsableGUID(t *testing.T) {
	var ids StringID = NewSequential()

	s := ids.Generate()
	g, err := ParseGUID(s)
	if err != nil {
		t.Fatalf("ParseGUID(%q): %v", s, err)
	}
	if _, err := NewSequential().Timestamp(g); err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("expected Default to return the same generator")
	}
}
