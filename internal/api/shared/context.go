package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// ContextKey is the type for values this package stores in a request
// context.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's ID, set by the auth
	// middleware.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request trace ID, set by the trace middleware.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID; the
	// encoded form is twice as many hex characters.
	TraceIDLength = 16
)

// SetTraceID stamps the context with a fresh trace ID so all logs and
// error responses for one request can be correlated.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// newTraceID returns a hex-encoded random ID. If the entropy source fails
// the ID degrades to a timestamp, which still keeps requests
// distinguishable in logs.
func newTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		binary.BigEndian.PutUint64(b, uint64(time.Now().UnixNano()))
	}
	return hex.EncodeToString(b)
}
