package logging

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	stepKey      contextKey = "step"
)

// WithSessionID attaches the activity session ID for the current step.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithStep attaches the wizard step name.
func WithStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, stepKey, step)
}

// SessionID returns the session ID stored in ctx, or "".
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// Step returns the step name stored in ctx, or "".
func Step(ctx context.Context) string {
	if s, ok := ctx.Value(stepKey).(string); ok {
		return s
	}
	return ""
}
