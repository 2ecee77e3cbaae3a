// Package account implements the credential and session backend: email and
// password sign-in, sign-up, JWT session issuance, OAuth code exchange, and
// the auth-state-change feed. The rest of the application reaches it only
// through the Backend interface, so the backend stays an opaque collaborator
// that tests can replace with doubles.
package account

import "time"

// User is the identity record derived from a session. It is immutable from
// the application's perspective except through UpdateUser.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`

	hashedPassword string
}

// Session is the backend-issued proof of authentication: a token pair with an
// expiry and the user it was issued to. It is replaced wholesale on every
// auth-state change and destroyed on sign-out or expiry.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// Expired reports whether the access token is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// UserMetadata carries the self-service mutable fields of a user record.
// Nil fields are left unchanged.
type UserMetadata struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
