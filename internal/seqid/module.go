package seqid

import (
	"context"

	"github.com/chaseflorell/seqguid/internal/pkg/pkgconfig"
	"github.com/chaseflorell/seqguid/internal/pkg/pkgrouter"
	"github.com/chaseflorell/seqguid/internal/pkg/pkguid"
	"github.com/chaseflorell/seqguid/internal/seqid/inbound"
	"github.com/chaseflorell/seqguid/internal/seqid/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Router    *pkgrouter.Router
	Generator *pkguid.Sequential
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Generator == nil {
		dep.Generator = pkguid.Default()
	}

	uc := usecase.New(usecase.Dependency{
		Generator: dep.Generator,
		MaxBatch:  int(dep.Config.GetInt("seqid.batch.max_count")),
		MaxSeeds:  int(dep.Config.GetInt("seqid.batch.max_seeds")),
		Workers:   int(dep.Config.GetInt("seqid.batch.workers")),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil, nil
}
