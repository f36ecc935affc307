// Package sessions provides the key/value storage backing one logical Discord
// login. A Store holds the CSRF state nonce while an authorization URL is
// outstanding, then the token material once the code exchange has completed.
// The Manager hands out isolated stores keyed by an opaque browser session ID.
package sessions

// Keys written and read by the discord package.
const (
	KeyState        = "state"
	KeyRefreshToken = "refresh_token"
	KeyAccessToken  = "access_token"
	KeyExpireAt     = "expire_at"
	KeyScope        = "scope"
)

// Store defines the interface for per-login session storage.
// A store is scoped to a single authentication context; it is never shared
// between two logical logins.
type Store interface {
	// Get retrieves the value stored under key
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value
	Set(key, value string)

	// Has reports whether key is present
	Has(key string) bool

	// Clear removes every key from the store
	Clear()
}
