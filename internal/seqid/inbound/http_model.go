package inbound

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/chaseflorell/seqguid/internal/pkg/pkguid"
)

type GenerateRequest struct {
	Seed *string `json:"seed"`
}

type BatchRequest struct {
	Seeds []string `json:"seeds"`
	Count int      `json:"count"`
}

type GenerateResponse struct {
	ID        pkguid.GUID `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Seed      string      `json:"seed"`
}

func newGenerateResponse(id pkguid.GUID, ts time.Time) GenerateResponse {
	seed := id.Seed()
	return GenerateResponse{
		ID:        id,
		Timestamp: ts,
		Seed:      hex.EncodeToString(seed[:]),
	}
}

func (GenerateResponse) StatusCode() int {
	return http.StatusCreated
}

func (GenerateResponse) Message() string {
	return "identifier generated"
}

type Series struct {
	Seed string        `json:"seed"`
	IDs  []pkguid.GUID `json:"ids"`
}

type BatchResponse struct {
	Series []Series `json:"series"`
	total  int
}

func (BatchResponse) StatusCode() int {
	return http.StatusCreated
}

func (BatchResponse) Message() string {
	return "identifiers generated"
}

func (r BatchResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
	}
}

type TimestampResponse struct {
	ID        pkguid.GUID `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Ticks     int64       `json:"ticks"`
}
