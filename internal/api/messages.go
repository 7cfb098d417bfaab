// Package api defines the habitauth RPC contract shared by the server and
// the CLI: request and response messages, the service descriptor, a client
// and the JSON codec both sides speak.
package api

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a session token and its expiry in Unix seconds.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// The requests below are authenticated through the "authorization" metadata
// key and carry no body.
type (
	LogoutRequest     struct{}
	ProfileRequest    struct{}
	WhoAmIRequest     struct{}
	CheckTokenRequest struct{}
	PingRequest       struct{}
)

type LogoutResponse struct {
	Status string `json:"status"`
}

type ProfileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	JoinedAt int64  `json:"joined_at"`
	XP       int64  `json:"xp"`
}

type WhoAmIResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

// CheckTokenResponse reports the embedded expiry, which may be in the past.
type CheckTokenResponse struct {
	ExpiresAt int64 `json:"expires_at"`
}

type PingResponse struct {
	Status string `json:"status"`
}
