package usecase

import (
	"time"

	"github.com/chaseflorell/seqguid/internal/pkg/pkguid"
)

// GenerateInput selects the seed for a single identifier. A nil Seed asks
// for a random one; a non-nil Seed is resolved even when empty.
type GenerateInput struct {
	Seed *string
}

type GenerateResult struct {
	ID        pkguid.GUID
	Timestamp time.Time
}

type BatchInput struct {
	Seeds []string
	Count int
}

// Series is one seed's identifiers in generation order.
type Series struct {
	Seed string
	IDs  []pkguid.GUID
}

type BatchResult struct {
	Series []Series
}

// Total returns the number of identifiers across all series.
func (r BatchResult) Total() int {
	total := 0
	for _, s := range r.Series {
		total += len(s.IDs)
	}
	return total
}

type TimestampResult struct {
	ID        pkguid.GUID
	Timestamp time.Time
	Ticks     int64
}
