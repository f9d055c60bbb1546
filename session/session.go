// Package session models the per-user authentication and authorization
// state, and its lifecycle across interactions.
package session

import "github.com/securechat/securechat/allowlist"

// User-facing error messages for the login outcomes.
const (
	ErrUnauthorizedUser = "Unauthorized User"
	ErrInvalidUserData  = "Invalid User Data"
)

// State of a session.
type State int

const (
	// Anonymous is the initial state: no identity, nothing authorized.
	Anonymous State = iota
	// PendingReview is a transient state produced by a rejected login.
	// It exists only to carry the denial message back to the client and
	// is never persisted; the stored state remains Anonymous.
	PendingReview
	// Authorized means the identity passed the allow-list check.
	Authorized
)

// Identity is the profile bundle of an authenticated user.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Session holds the authentication/authorization status of one
// interaction context. It is a value; transitions return a new Session
// and the caller re-evaluates synchronously. Exactly one Session exists
// per interaction context and is never shared across users.
type Session struct {
	State     State
	Identity  *Identity
	LastError string
}

// New returns the initial, empty session.
func New() Session {
	return Session{State: Anonymous}
}

// Login transitions on the outcome of a successful external
// authentication combined with an admission decision. Only Admitted
// yields an Authorized session; Denied and Invalid yield the transient
// PendingReview carrying the matching error message.
func (s Session) Login(id Identity, d allowlist.Decision) Session {
	switch d {
	case allowlist.Admitted:
		return Session{State: Authorized, Identity: &id}
	case allowlist.Denied:
		return Session{State: PendingReview, LastError: ErrUnauthorizedUser}
	default:
		return Session{State: PendingReview, LastError: ErrInvalidUserData}
	}
}

// LoginFailed transitions on a failed external authentication, carrying
// the provider's message.
func (s Session) LoginFailed(providerMsg string) Session {
	return Session{State: PendingReview, LastError: providerMsg}
}

// Logout clears all fields and returns to Anonymous.
func (s Session) Logout() Session {
	return New()
}

// IsAuthorized reports whether the session may use the chat.
func (s Session) IsAuthorized() bool {
	return s.State == Authorized && s.Identity != nil
}
