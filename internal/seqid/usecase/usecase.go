package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chaseflorell/seqguid/internal/pkg/pkgerror"
	"github.com/chaseflorell/seqguid/internal/pkg/pkgroutine"
	"github.com/chaseflorell/seqguid/internal/pkg/pkguid"
)

const (
	DefaultMaxBatch = 1000
	DefaultMaxSeeds = 100
	DefaultWorkers  = 8
)

type Generator interface {
	New() pkguid.GUID
	NewFromString(seed string) (pkguid.GUID, error)
	Timestamp(id pkguid.GUID) (time.Time, error)
}

type Dependency struct {
	Generator Generator
	MaxBatch  int
	MaxSeeds  int
	Workers   int
}

type Usecase struct {
	gen      Generator
	maxBatch int
	maxSeeds int
	workers  int
}

func New(dep Dependency) *Usecase {
	maxBatch := dep.MaxBatch
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatch
	}

	maxSeeds := dep.MaxSeeds
	if maxSeeds < 1 {
		maxSeeds = DefaultMaxSeeds
	}

	workers := dep.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	return &Usecase{
		gen:      dep.Generator,
		maxBatch: maxBatch,
		maxSeeds: maxSeeds,
		workers:  workers,
	}
}

func (u *Usecase) Generate(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	if u.gen == nil {
		return GenerateResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	var id pkguid.GUID
	if in.Seed == nil {
		id = u.gen.New()
	} else {
		var err error
		id, err = u.gen.NewFromString(*in.Seed)
		if err != nil {
			return GenerateResult{}, normalizeErr(err)
		}
	}

	return GenerateResult{
		ID:        id,
		Timestamp: pkguid.FromTicks(id.Ticks()),
	}, nil
}

// Batch issues Count identifiers for every seed. Seeds are handled
// concurrently; each series is ordered by generation time.
func (u *Usecase) Batch(ctx context.Context, in BatchInput) (BatchResult, error) {
	if u.gen == nil {
		return BatchResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if len(in.Seeds) == 0 {
		return BatchResult{}, pkgerror.NewInvalidInput(errors.New("at least one seed is required"))
	}

	if len(in.Seeds) > u.maxSeeds {
		return BatchResult{}, pkgerror.NewInvalidInput(fmt.Errorf("at most %d seeds are allowed", u.maxSeeds))
	}

	if in.Count < 1 || in.Count > u.maxBatch {
		return BatchResult{}, pkgerror.NewInvalidInput(fmt.Errorf("count must be between 1 and %d", u.maxBatch))
	}

	series := make([]Series, len(in.Seeds))
	runner := pkgroutine.NewManager(u.workers)

	for i, seed := range in.Seeds {
		i, seed := i, seed
		runner.Go(ctx, func(ctx context.Context) error {
			ids := make([]pkguid.GUID, 0, in.Count)
			for j := 0; j < in.Count; j++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				id, err := u.gen.NewFromString(seed)
				if err != nil {
					return fmt.Errorf("seed %q: %w", seed, err)
				}
				ids = append(ids, id)
			}

			series[i] = Series{Seed: seed, IDs: ids}
			return nil
		})
	}

	if err := runner.Wait(); err != nil {
		slog.WarnContext(ctx, "batch generation failed", "seeds", len(in.Seeds), "count", in.Count, "error", err)
		return BatchResult{}, normalizeErr(err)
	}

	return BatchResult{Series: series}, nil
}

func (u *Usecase) Timestamp(ctx context.Context, raw string) (TimestampResult, error) {
	if u.gen == nil {
		return TimestampResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	id, err := pkguid.ParseGUID(raw)
	if err != nil {
		return TimestampResult{}, normalizeErr(err)
	}

	ts, err := u.gen.Timestamp(id)
	if err != nil {
		return TimestampResult{}, normalizeErr(err)
	}

	return TimestampResult{
		ID:        id,
		Timestamp: ts,
		Ticks:     id.Ticks(),
	}, nil
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}

	if errors.Is(err, pkguid.ErrSeedTooShort) ||
		errors.Is(err, pkguid.ErrInvalidTimestamp) ||
		errors.Is(err, pkguid.ErrInvalidGUID) {
		return pkgerror.NewInvalidInput(err)
	}

	return pkgerror.NewServer(err)
}
