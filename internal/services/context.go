package services

import "context"

type contextKey string

const (
	batchIDKey    contextKey = "batch_id"
	matchIndexKey contextKey = "match_index"
	operationKey  contextKey = "operation"
	requestIDKey  contextKey = "request_id"
)

// WithBatchID annotates context with the batch run identifier.
func WithBatchID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, batchIDKey, id)
}

// BatchIDFromContext extracts the batch run identifier if present.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(batchIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMatchIndex annotates context with the zero-based match position inside
// the active batch run.
func WithMatchIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, matchIndexKey, index)
}

// MatchIndexFromContext returns the match position if present.
func MatchIndexFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(matchIndexKey)
	if v == nil {
		return 0, false
	}
	if idx, ok := v.(int); ok {
		return idx, true
	}
	return 0, false
}

// WithOperation annotates context with the orchestrator operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	if operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, operation)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(operationKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
