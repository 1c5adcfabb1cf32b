package constants

// ContextKeyUserID is the key under which the authenticated user's ID is
// stored in both the session and the request context.
const ContextKeyUserID = "user_id"

// ContextKeyRequestID is the key under which the per-request ID is stored.
const ContextKeyRequestID = "request_id"

// HeaderRequestID is the response header carrying the request ID.
const HeaderRequestID = "X-Request-ID"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// SessionName is the cookie name for the portal session.
const SessionName = "portal_session"

// SessionMaxAge is the session lifetime in seconds (7 days).
const SessionMaxAge = 86400 * 7
