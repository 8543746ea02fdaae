package contexthelpers

import (
	"context"
	"net/http"
)

// AuthenticateContext marks the request as authenticated with the given user
// identity. The identity itself comes from the upstream auth collaborator.
func AuthenticateContext(r *http.Request, userID int64, role string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, AuthenticatedUserIDContextKey, userID)
	ctx = context.WithValue(ctx, UserRoleContextKey, role)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}
