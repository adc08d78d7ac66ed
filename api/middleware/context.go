package middleware

import (
	"context"
	"slices"
)

type contextKey string

const (
	ctxUserID      contextKey = "user_id"
	ctxRole        contextKey = "actor_role"
	ctxPermissions contextKey = "permissions"
	ctxAccessID    contextKey = "access_id"
)

// UserIDFromContext returns the authenticated caller id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(ctxUserID).(int64)
	return v, ok && v > 0
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func PermissionsFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxPermissions).([]string); ok {
		return v
	}
	return nil
}

// AccessIDFromContext returns the jti of the token that authenticated the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// HasPermission reports whether the caller holds tag.
func HasPermission(ctx context.Context, tag string) bool {
	return slices.Contains(PermissionsFromContext(ctx), tag)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithIdentity injects the full caller identity. Controllers and tests use it
// to simulate an authenticated request.
func WithIdentity(ctx context.Context, userID int64, role string, permissions []string, accessID string) context.Context {
	ctx = WithUserID(ctx, userID)
	ctx = context.WithValue(ctx, ctxRole, role)
	ctx = context.WithValue(ctx, ctxPermissions, permissions)
	return context.WithValue(ctx, ctxAccessID, accessID)
}
