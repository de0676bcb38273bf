package auth

import "time"

// Session cookie and token settings
const (
	SessionCookieName = "scrap_session"
	SessionIssuer     = "scrap-tracker"
	SessionSubject    = "operator"
	DefaultSessionTTL = 12 * time.Hour
	MinSecretLength   = 32
)

// Error messages
const (
	ErrMsgNoPassword      = "either APP_PASSWORD or APP_PASSWORD_HASH must be set"
	ErrMsgBadPasswordHash = "APP_PASSWORD_HASH is not a bcrypt hash"
	ErrMsgHashPassword    = "failed to hash password"
	ErrMsgShortSecret     = "session secret must be at least %d bytes"
	ErrMsgSignToken       = "failed to sign session token"
	ErrMsgInvalidSession  = "invalid session"
)
