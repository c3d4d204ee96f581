package api

import (
	"context"
	"time"

	"github.com/shaj13/go-guardian/auth"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

type contextKey string

const userKey contextKey = "user"

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

// WithUser stores the authenticated caller on ctx
func WithUser(ctx context.Context, info auth.Info) context.Context {
	return context.WithValue(ctx, userKey, info)
}

// UserFromContext returns the authenticated caller, if any
func UserFromContext(ctx context.Context) (auth.Info, bool) {
	info, ok := ctx.Value(userKey).(auth.Info)
	return info, ok && info != nil
}

// InGroup reports whether info carries group
func InGroup(info auth.Info, group string) bool {
	if info == nil {
		return false
	}
	for _, g := range info.Groups() {
		if g == group {
			return true
		}
	}
	return false
}

// RiderFromContext returns the rider id and email of an authenticated rider.
// email is empty when the rider's token carried no email claim.
func RiderFromContext(ctx context.Context) (id, email string, ok bool) {
	info, found := UserFromContext(ctx)
	if !found || !InGroup(info, RiderGroup) {
		return "", "", false
	}
	if emails := info.Extensions()[emailExtension]; len(emails) > 0 {
		email = emails[0]
	}
	return info.ID(), email, true
}
