package pkguid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	guidSize      = 16
	timestampSize = 8
	seedOffset    = guidSize - timestampSize
)

// ErrInvalidGUID is returned when text cannot be parsed as a GUID.
var ErrInvalidGUID = errors.New("invalid guid")

// GUID is a 128-bit identifier: 8 bytes of big-endian ticks followed by
// 8 bytes of seed.
type GUID [guidSize]byte

// Nil is the zero GUID.
var Nil GUID

// ParseGUID parses the canonical text forms accepted by uuid.Parse:
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx, urn:uuid:..., {...} and 32 raw hex
// digits. Bytes are taken in textual order.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w %q: %w", ErrInvalidGUID, s, err)
	}
	return GUID(u), nil
}

// MustParseGUID is like ParseGUID but panics on error.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

// String returns the canonical lowercase 8-4-4-4-12 form.
func (g GUID) String() string { return uuid.UUID(g).String() }

// Bytes returns a copy of the raw 16 bytes.
func (g GUID) Bytes() []byte { b := make([]byte, guidSize); copy(b, g[:]); return b }

// Compare returns -1, 0 or 1 comparing raw bytes.
func (g GUID) Compare(other GUID) int { return bytes.Compare(g[:], other[:]) }

// IsZero reports whether g is Nil.
func (g GUID) IsZero() bool { return g == Nil }

// Ticks returns the raw timestamp segment. No validation is applied.
func (g GUID) Ticks() int64 {
	return int64(binary.BigEndian.Uint64(g[:timestampSize]))
}

// Seed returns the seed segment.
func (g GUID) Seed() [timestampSize]byte {
	var s [timestampSize]byte
	copy(s[:], g[seedOffset:])
	return s
}

func (g GUID) timestampBytes() [timestampSize]byte {
	var b [timestampSize]byte
	copy(b[:], g[:timestampSize])
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GUID) UnmarshalText(data []byte) error {
	parsed, err := ParseGUID(string(data))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
