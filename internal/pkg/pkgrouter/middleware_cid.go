package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/chaseflorell/seqguid/internal/pkg/pkglog"
)

// Generator issues correlation IDs. *pkguid.Sequential satisfies it, so
// generated IDs sort with the GUIDs the service hands out.
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID carries the request correlation ID in both directions.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted from proxies that do not set HeaderCorrelationID.
	HeaderRequestID = "X-Request-ID"

	maxCIDLength = 128
)

// inboundCIDHeaders lists accepted request headers in order of preference.
//
//nolint:gochecknoglobals // read-only
var inboundCIDHeaders = [...]string{HeaderCorrelationID, HeaderRequestID}

// normalizeCID trims v and drops values that could split a header line.
func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	if len(v) > maxCIDLength {
		v = v[:maxCIDLength]
	}
	return v
}

func inboundCID(r *http.Request) string {
	for _, name := range inboundCIDHeaders {
		if cid := normalizeCID(r.Header.Get(name)); cid != "" {
			return cid
		}
	}
	return ""
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := inboundCID(r)
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.WithCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
