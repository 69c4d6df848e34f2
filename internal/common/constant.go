package common

// UserIDHeaderName is the HTTP header carrying the caller's user identifier
// on admin requests. The backend takes it verbatim; it is not a credential.
const UserIDHeaderName = "x-user-id"

// RequestIDHeaderName is attached to every outbound request for log correlation.
const RequestIDHeaderName = "X-Request-ID"

// Durable storage keys.
const (
	CartStorageKey    = "cart"
	SessionStorageKey = "user"
)
