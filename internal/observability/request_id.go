package observability

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on every response. An inbound value
// that parses as a UUID is reused so callers can correlate retries.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const RequestIDKey contextKey = "request_id"

func NewRequestID() string {
	return uuid.New().String()
}

// requestIDFromHeader returns the inbound ID when it is a UUID, or a new one.
func requestIDFromHeader(value string) string {
	if _, err := uuid.Parse(value); err == nil {
		return value
	}
	return NewRequestID()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
