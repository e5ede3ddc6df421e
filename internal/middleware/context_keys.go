package middleware

// ContextKey is a private type for context keys to avoid collisions.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id.
	UserIDCtxKey = ContextKey("user_id")

	// TokenIDCtxKey holds the session token id, needed for revocation
	// on logout.
	TokenIDCtxKey = ContextKey("token_id")
)
