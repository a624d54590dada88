package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// Token is the credential issued by POST /token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validate mirrors the backend's registration rules so obvious rejections
// surface without a roundtrip. The backend stays authoritative.
func (r Registration) Validate() error {
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", ErrValidation)
	}
	if !usernamePattern.MatchString(r.Username) {
		return fmt.Errorf("%w: username may only contain letters, digits and underscores", ErrValidation)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: email address is invalid", ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range r.Password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password needs an upper-case letter, a lower-case letter and a digit", ErrValidation)
	}
	return nil
}
