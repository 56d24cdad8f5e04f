package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/chaseflorell/seqguid/internal/pkg/pkgerror"
	"github.com/chaseflorell/seqguid/internal/pkg/pkgrouter"
	"github.com/chaseflorell/seqguid/internal/seqid/usecase"
)

const maxBodyBytes = 1 << 20

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Generate(ctx context.Context, r *http.Request) (any, error) {
	var req GenerateRequest
	if err := decodeBody(r, &req, true); err != nil {
		return nil, err
	}

	result, err := h.uc.Generate(ctx, usecase.GenerateInput{Seed: req.Seed})
	if err != nil {
		return nil, err
	}

	return newGenerateResponse(result.ID, result.Timestamp), nil
}

func (h *HTTPEndpoint) Batch(ctx context.Context, r *http.Request) (any, error) {
	var req BatchRequest
	if err := decodeBody(r, &req, false); err != nil {
		return nil, err
	}

	result, err := h.uc.Batch(ctx, usecase.BatchInput{Seeds: req.Seeds, Count: req.Count})
	if err != nil {
		return nil, err
	}

	series := make([]Series, 0, len(result.Series))
	for _, s := range result.Series {
		series = append(series, Series{Seed: s.Seed, IDs: s.IDs})
	}

	return BatchResponse{Series: series, total: result.Total()}, nil
}

func (h *HTTPEndpoint) Timestamp(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Timestamp(ctx, pkgrouter.Param(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return TimestampResponse{
		ID:        result.ID,
		Timestamp: result.Timestamp,
		Ticks:     result.Ticks,
	}, nil
}

// decodeBody reads a JSON object into dst. An empty body is accepted only
// when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return pkgerror.NewInvalidFormat(errors.New("request body is required"))
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return pkgerror.NewInvalidFormat(err)
	}

	return nil
}
