package application

import "github.com/nkaddour/ttc/internal/domain"

type GuardDecision int

const (
	// GuardLoading: session state is still being established, render a
	// neutral indicator and nothing else.
	GuardLoading GuardDecision = iota
	// GuardRedirectLogin: send the user to the login surface.
	GuardRedirectLogin
	// GuardAllow: render the requested protected surface.
	GuardAllow
)

func (d GuardDecision) String() string {
	switch d {
	case GuardLoading:
		return "loading"
	case GuardRedirectLogin:
		return "redirect-login"
	case GuardAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Guard decides what to do with a protected surface given the session
// status. Pure: holds no state and performs no calls.
func Guard(status domain.SessionStatus) GuardDecision {
	switch status {
	case domain.SessionInitializing, domain.SessionAuthenticating:
		return GuardLoading
	case domain.SessionAuthenticated:
		return GuardAllow
	default:
		return GuardRedirectLogin
	}
}
