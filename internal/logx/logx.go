package logx

import (
	"context"

	"pkt.systems/sndbq/schema"
	"pkt.systems/pslog"
)

type contextKey int

const (
	sessionKey contextKey = iota
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with a session id when available.
func WithSession(log pslog.Logger, sessionID schema.SessionID) pslog.Logger {
	if sessionID != "" {
		log = log.With("session", sessionID)
	}
	return log
}

// WithRequest annotates the logger with the lookup kind and identifier.
func WithRequest(log pslog.Logger, req schema.LookupRequest) pslog.Logger {
	if req.Kind != "" {
		log = log.With("kind", req.Kind)
	}
	if req.Identifier != "" {
		log = log.With("id", req.Identifier)
	}
	return log
}

// SessionFromContext returns the session marker stored on ctx.
func SessionFromContext(ctx context.Context) schema.SessionID {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(sessionKey).(schema.SessionID)
	return id
}

// ContextWithSessionLogger attaches a session-annotated logger and the
// session marker to the context.
func ContextWithSessionLogger(ctx context.Context, sessionID schema.SessionID) context.Context {
	if ctx == nil || sessionID == "" {
		return ctx
	}
	if current := SessionFromContext(ctx); current == sessionID {
		return ctx
	}
	ctx = pslog.ContextWithLogger(ctx, WithSession(pslog.Ctx(ctx), sessionID))
	return context.WithValue(ctx, sessionKey, sessionID)
}
