package contexthelpers

import (
	"context"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(IsAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

func AuthenticatedUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(AuthenticatedUserIDContextKey).(int64)
	if !ok {
		return 0
	}

	return userID
}

func UserRole(ctx context.Context) string {
	role, ok := ctx.Value(UserRoleContextKey).(string)
	if !ok {
		return ""
	}

	return role
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}
