package logger

import (
	"context"

	"go.uber.org/zap"
)

// ContextKey for storing values in context
type ContextKey string

const (
	// LoggerKey is the key for storing logger in context
	LoggerKey ContextKey = "logger"
	// CorrelationIDKey is the key for correlation ID
	CorrelationIDKey ContextKey = "correlation_id"
	// UserIDKey is the key for the authenticated app user ID
	UserIDKey ContextKey = "user_id"
	// FamilyKey is the key for the pairing-code family name
	FamilyKey ContextKey = "family"
	// RequestIDKey is the key for request ID
	RequestIDKey ContextKey = "request_id"
)

// FromContext extracts logger from context or returns a no-op logger
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return NewNop()
	}

	if l, ok := ctx.Value(LoggerKey).(*Logger); ok && l != nil {
		return l
	}

	return NewNop()
}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}

// WithCorrelationIDCtx adds correlation ID to context
func WithCorrelationIDCtx(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// GetCorrelationID extracts correlation ID from context
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserIDCtx adds the authenticated user ID to context
func WithUserIDCtx(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// WithFamilyCtx adds the pairing-code family name to context
func WithFamilyCtx(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, FamilyKey, name)
}

// GetFamily extracts the pairing-code family name from context
func GetFamily(ctx context.Context) string {
	if name, ok := ctx.Value(FamilyKey).(string); ok {
		return name
	}
	return ""
}

// NewNop creates a no-op logger for testing or when context has no logger
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}
