package domain

import "time"

// User is a login identity. PasswordHash is an encoded argon2id hash with a
// per-user random salt; the plaintext is never stored.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// Session binds an opaque token to a user until ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginRequest is the login body. Both keys must be present; empty values
// are checked against the store like any other credentials.
type LoginRequest struct {
	Username *string `json:"username" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// LoginResponse carries a token on success and null on failure.
type LoginResponse struct {
	Status string  `json:"status"`
	Token  *string `json:"token"`
}

const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)
