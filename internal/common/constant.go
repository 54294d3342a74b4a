package common

// Local storage keys. TokenKey is the canonical location of the bearer token;
// LegacyTokenKey is checked as a fallback for sessions written by older builds.
const (
	TokenKey       = "auth_token"
	LegacyTokenKey = "token"
	UserDataKey    = "user_data"

	// Location consent flags.
	UserLocationKey        = "userLocation"
	LocationPromptShownKey = "locationPromptShown"
)

// AuthHeaderName is the HTTP header carrying the bearer token on outbound
// requests.
const AuthHeaderName = "Authorization"
