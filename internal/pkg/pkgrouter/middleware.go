package pkgrouter

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws run in the order given. Nil entries are skipped,
// which lets callers pass optional middleware without branching.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// Param returns the named path parameter matched for the current request.
func Param(ctx context.Context, name string) string {
	return httprouter.ParamsFromContext(ctx).ByName(name)
}
