package pkguid

import (
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// MinSeedLength is the minimum number of characters a string seed needs.
const MinSeedLength = timestampSize

// ErrSeedTooShort is returned for string seeds shorter than MinSeedLength.
var ErrSeedTooShort = errors.New("seed must be a minimum of 8 characters")

type seedCache interface {
	Get(seed string) (GUID, bool)
	Add(seed string, value GUID)
}

// mapCache never evicts.
type mapCache struct {
	mu sync.RWMutex
	m  map[string]GUID
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string]GUID)}
}

func (c *mapCache) Get(seed string) (GUID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[seed]
	return v, ok
}

func (c *mapCache) Add(seed string, value GUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[seed] = value
}

type lruCache struct {
	c *lru.Cache[string, GUID]
}

func (c lruCache) Get(seed string) (GUID, bool) {
	return c.c.Get(seed)
}

func (c lruCache) Add(seed string, value GUID) {
	c.c.Add(seed, value)
}

// SeedResolver turns seed inputs into 16-byte seed blocks. Only bytes
// [8,16) of a resolved seed end up in a generated GUID.
type SeedResolver struct {
	cache seedCache
}

// NewSeedResolver builds a resolver. A cacheSize of zero or less memoizes
// every distinct string seed; a positive size keeps the most recently used
// entries only.
func NewSeedResolver(cacheSize int) (*SeedResolver, error) {
	if cacheSize <= 0 {
		return &SeedResolver{cache: newMapCache()}, nil
	}

	c, err := lru.New[string, GUID](cacheSize)
	if err != nil {
		return nil, err
	}

	return &SeedResolver{cache: lruCache{c: c}}, nil
}

// Random returns a fresh random seed. The value only needs to be unique.
func (r *SeedResolver) Random() GUID {
	return GUID(uuid.New())
}

// Resolve derives a seed from s. A GUID literal is used verbatim; any
// other string must have at least MinSeedLength characters, of which the
// first MinSeedLength are ASCII-encoded into the seed segment.
func (r *SeedResolver) Resolve(s string) (GUID, error) {
	if v, ok := r.cache.Get(s); ok {
		return v, nil
	}

	if u, err := uuid.Parse(s); err == nil {
		r.cache.Add(s, GUID(u))
		return GUID(u), nil
	}

	if utf8.RuneCountInString(s) < MinSeedLength {
		return Nil, ErrSeedTooShort
	}

	var seed GUID
	i := seedOffset
	for _, c := range s {
		if i == guidSize {
			break
		}
		if c >= utf8.RuneSelf {
			c = '?'
		}
		seed[i] = byte(c)
		i++
	}

	if utf8.RuneCountInString(s) > MinSeedLength {
		slog.Debug("sequential guid seed truncated",
			"seed", s,
			"truncated", string(seed[seedOffset:]),
		)
	}

	r.cache.Add(s, seed)
	return seed, nil
}
