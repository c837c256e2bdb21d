package logging

import "context"

// RequestIDKey is the attribute name under which request ids are logged.
const RequestIDKey = "request_id"

type requestIDCtxKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id. Every record logged
// through SlogLogger with that context gets a request_id attribute.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDCtxKey{}).(string)
	return id, ok && id != ""
}
