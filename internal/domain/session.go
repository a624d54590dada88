package domain

type SessionStatus string

const (
	SessionInitializing    SessionStatus = "initializing"
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionAuthenticating  SessionStatus = "authenticating"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionFailed          SessionStatus = "failed"
)

// Session is the client-side record of who is signed in.
//
// Profile is non-nil exactly when Status is SessionAuthenticated.
// Credential is set while authenticating and authenticated, empty otherwise.
type Session struct {
	Status     SessionStatus
	Credential string
	Profile    *User
	LastError  string
}
