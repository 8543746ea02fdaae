package contexthelpers

type contextKey string

const IsAuthenticatedContextKey = contextKey("isAuthenticated")
const AuthenticatedUserIDContextKey = contextKey("authenticatedUserID")
const UserRoleContextKey = contextKey("userRole")
const CurrentPathContextKey = contextKey("currentPath")
