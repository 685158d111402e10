package utils

import (
	"context"
	"strings"

	"github.com/mmdatafocus/billing_ledger/appctx"
)

var (
	ContextKeyUsername      = appctx.ContextKeyUsername
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

// DefaultAuditUser is recorded when no operator is attached to the context.
const DefaultAuditUser = "admin"

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyUsername)
}

func SetUsernameInContext(ctx context.Context, username string) context.Context {
	return appctx.Set(ctx, ContextKeyUsername, username)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

// ResolveAuditUser prefers the logged-in operator over an explicit "admin" or empty user.
func ResolveAuditUser(ctx context.Context, user string) string {
	user = strings.TrimSpace(user)
	if current, ok := GetUsernameFromContext(ctx); ok && strings.TrimSpace(current) != "" {
		if user == "" || strings.EqualFold(user, DefaultAuditUser) {
			return strings.TrimSpace(current)
		}
	}
	if user == "" {
		return DefaultAuditUser
	}
	return user
}
