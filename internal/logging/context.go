package logging

import "context"

type ctxKey struct{}

// WithRequestID returns a copy of ctx carrying the request correlation id.
// SlogLogger adds it to every record logged with that context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
