package trace

import "context"

type requestIDKey struct{}

// WithRequestID returns a context carrying id, retrievable via
// [RequestIDFrom]. [Begin] and [Op.End] attach it to their log lines
// automatically when present.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID stored in ctx by [WithRequestID], if
// any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
