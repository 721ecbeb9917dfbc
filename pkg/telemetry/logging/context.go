package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// BotKey is the context key for the matched crawler pattern.
	BotKey contextKey = "bot"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithBot records the crawler pattern matched for the current request.
func WithBot(ctx context.Context, bot string) context.Context {
	return context.WithValue(ctx, BotKey, bot)
}

// GetBot retrieves the matched crawler pattern from the context.
func GetBot(ctx context.Context) string {
	if bot, ok := ctx.Value(BotKey).(string); ok {
		return bot
	}
	return ""
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if requestID := GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String(string(RequestIDKey), requestID))
	}
	if bot := GetBot(ctx); bot != "" {
		attrs = append(attrs, slog.String(string(BotKey), bot))
	}

	return attrs
}
