package inbound

import (
	"context"

	"github.com/chaseflorell/seqguid/internal/pkg/pkgrouter"
	"github.com/chaseflorell/seqguid/internal/seqid/usecase"
)

type uc interface {
	Generate(ctx context.Context, in usecase.GenerateInput) (usecase.GenerateResult, error)
	Batch(ctx context.Context, in usecase.BatchInput) (usecase.BatchResult, error)
	Timestamp(ctx context.Context, raw string) (usecase.TimestampResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/ids", end.Generate)
	r.POST("/ids/batch", end.Batch)
	r.GET("/ids/:id/timestamp", end.Timestamp)
}
