package pkglog

import "context"

type correlationKey struct{}

// CorrelationID returns the request correlation ID carried by ctx and
// whether one was set. Empty IDs count as unset.
func CorrelationID(ctx context.Context) (string, bool) {
	cid, ok := ctx.Value(correlationKey{}).(string)
	if !ok || cid == "" {
		return "", false
	}
	return cid, true
}

// WithCorrelationID returns a child of ctx carrying cid.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cid)
}
