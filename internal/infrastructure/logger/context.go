package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

// Keys under which request scoped values travel in a context.Context
const (
	LoggerKey       contextKey = "logger"
	RequestIDKey    contextKey = "request_id"
	RestaurantIDKey contextKey = "restaurant_id"
)

// WithContext stores logger in ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID records the request id in ctx and stores a logger carrying it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withValue(ctx, logger, RequestIDKey, requestID)
}

// WithRestaurantID records the restaurant scope in ctx and stores a logger carrying it
func WithRestaurantID(ctx context.Context, logger *zap.Logger, restaurantID string) (context.Context, *zap.Logger) {
	return withValue(ctx, logger, RestaurantIDKey, restaurantID)
}

func withValue(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String(string(key), value))
	ctx = context.WithValue(ctx, key, value)
	return WithContext(ctx, enriched), enriched
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func GetRestaurantID(ctx context.Context) string {
	id, _ := ctx.Value(RestaurantIDKey).(string)
	return id
}

// Fields returns the request and restaurant ids of ctx as zap fields, for
// loggers that were not derived from the request logger
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String(string(RequestIDKey), id))
	}
	if id := GetRestaurantID(ctx); id != "" {
		fields = append(fields, zap.String(string(RestaurantIDKey), id))
	}
	return fields
}
