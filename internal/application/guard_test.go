package application

import (
	"testing"

	"github.com/nkaddour/ttc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status domain.SessionStatus
		want   GuardDecision
	}{
		{domain.SessionInitializing, GuardLoading},
		{domain.SessionAuthenticating, GuardLoading},
		{domain.SessionAuthenticated, GuardAllow},
		{domain.SessionUnauthenticated, GuardRedirectLogin},
		{domain.SessionFailed, GuardRedirectLogin},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Guard(tc.status), "status %s", tc.status)
	}
}

func TestGuardDecisionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "loading", GuardLoading.String())
	assert.Equal(t, "redirect-login", GuardRedirectLogin.String())
	assert.Equal(t, "allow", GuardAllow.String())
	assert.Equal(t, "unknown", GuardDecision(99).String())
}
