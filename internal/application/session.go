package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/nkaddour/ttc/internal/ports"
)

// SessionService owns the authentication state machine. It is the only
// writer of the credential slot's meaning: the request pipeline merely
// reads the slot and clears it on invalidation, then reports back here
// through HandleInvalidation.
type SessionService struct {
	gateway ports.AuthGateway
	creds   ports.CredentialStore
	nav     ports.Navigator

	mu            sync.Mutex
	session       domain.Session
	loginInFlight bool
}

func NewSessionService(gateway ports.AuthGateway, creds ports.CredentialStore, nav ports.Navigator) *SessionService {
	if nav == nil {
		nav = ports.NavigatorFunc(func(ports.Route) {})
	}

	return &SessionService{
		gateway: gateway,
		creds:   creds,
		nav:     nav,
		session: domain.Session{Status: domain.SessionInitializing},
	}
}

// Session returns a copy of the current session record.
func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session
	if session.Profile != nil {
		profile := *session.Profile
		session.Profile = &profile
	}
	return session
}

// CurrentUser returns the verified profile, if any.
func (s *SessionService) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Status != domain.SessionAuthenticated || s.session.Profile == nil {
		return domain.User{}, false
	}
	return *s.session.Profile, true
}

// Resume drives the initializing state to a settled one: no stored
// credential means unauthenticated; a stored credential is only trusted
// once the profile fetch confirms it. Calling Resume after the session
// has settled is a no-op.
func (s *SessionService) Resume(ctx context.Context) error {
	s.mu.Lock()
	if s.session.Status != domain.SessionInitializing {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	token, err := s.creds.Get(ctx)
	if err != nil {
		// An unreadable store is indistinguishable from an absent
		// credential for session purposes.
		s.mu.Lock()
		s.session = domain.Session{Status: domain.SessionUnauthenticated}
		s.mu.Unlock()
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil
		}
		return fmt.Errorf("read stored credential: %w", err)
	}

	s.mu.Lock()
	s.session.Status = domain.SessionAuthenticating
	s.session.Credential = token
	s.mu.Unlock()

	return s.fetchCurrentUser(ctx)
}

// Login exchanges credentials for a token, persists it and verifies it by
// fetching the profile. A second call while one is in flight is rejected
// with domain.ErrLoginInFlight rather than racing the first.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.loginInFlight {
		s.mu.Unlock()
		return domain.ErrLoginInFlight
	}
	s.loginInFlight = true
	s.session.Status = domain.SessionAuthenticating
	s.session.LastError = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loginInFlight = false
		s.mu.Unlock()
	}()

	token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		s.fail(err)
		return err
	}

	if err := s.creds.Put(ctx, token.AccessToken); err != nil {
		err = fmt.Errorf("store credential: %w", err)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.session.Credential = token.AccessToken
	s.mu.Unlock()

	if err := s.fetchCurrentUser(ctx); err != nil {
		return err
	}

	s.nav.NavigateTo(ports.RouteDashboard)
	return nil
}

// Register creates the user then signs in with the same credentials, as
// two explicit sequential steps.
func (s *SessionService) Register(ctx context.Context, reg domain.Registration) error {
	if err := reg.Validate(); err != nil {
		s.setLastError(err)
		return err
	}

	if _, err := s.gateway.Register(ctx, reg); err != nil {
		s.setLastError(err)
		return err
	}

	return s.Login(ctx, reg.Username, reg.Password)
}

// Logout clears the credential slot and resets the session. Safe to call
// when already signed out: the slot is cleared again but there is no
// state change and no navigation.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	alreadyOut := s.session.Status == domain.SessionUnauthenticated &&
		s.session.Credential == "" && s.session.Profile == nil
	s.mu.Unlock()

	// The slot empties before the session flips: a failed clear must not
	// leave a stored credential behind a session that reports signed-out,
	// and a retry has to reach the store again.
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}

	if alreadyOut {
		return nil
	}

	s.mu.Lock()
	s.session = domain.Session{Status: domain.SessionUnauthenticated, LastError: s.session.LastError}
	s.mu.Unlock()

	s.nav.NavigateTo(ports.RouteLogin)
	return nil
}

// HandleInvalidation is the request pipeline's invalidation callback.
// The pipeline has already cleared the credential slot; this transitions
// the session and requests the login surface exactly once, however many
// concurrent calls observed the same 401.
func (s *SessionService) HandleInvalidation() {
	s.mu.Lock()
	if s.session.Status == domain.SessionUnauthenticated {
		s.mu.Unlock()
		return
	}
	s.session = domain.Session{
		Status:    domain.SessionUnauthenticated,
		LastError: "session expired, please sign in again",
	}
	s.mu.Unlock()

	s.nav.NavigateTo(ports.RouteLogin)
}

// fetchCurrentUser verifies the held credential. Any failure signs the
// session out: a credential is never held without a verified profile.
func (s *SessionService) fetchCurrentUser(ctx context.Context) error {
	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			err = errors.Join(err, logoutErr)
		}
		s.setLastError(err)
		return fmt.Errorf("fetch current user: %w", err)
	}

	s.mu.Lock()
	s.session.Status = domain.SessionAuthenticated
	s.session.Profile = &user
	s.session.LastError = ""
	s.mu.Unlock()

	return nil
}

func (s *SessionService) fail(err error) {
	s.mu.Lock()
	s.session = domain.Session{
		Status:    domain.SessionFailed,
		LastError: err.Error(),
	}
	s.mu.Unlock()
}

func (s *SessionService) setLastError(err error) {
	s.mu.Lock()
	s.session.LastError = err.Error()
	s.mu.Unlock()
}
