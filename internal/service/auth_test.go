package service

import (
	"testing"
	"time"

	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T, expiry time.Duration) (*PortalAuthService, *model.Portal) {
	t.Helper()

	hash, err := HashAccessCode("letmein-1234")
	require.NoError(t, err)

	portal := testPortal()
	portal.AccessCodeHash = hash

	repo := &fakePortalRepo{portals: map[string]*model.Portal{portal.ID: portal}}
	return NewPortalAuthService(repo, "test-secret", expiry), portal
}

func TestAuthenticateAndParse(t *testing.T) {
	svc, portal := newAuthFixture(t, time.Hour)

	token, err := svc.Authenticate(portal.ID, "letmein-1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, portal.ID, session.PortalID)
	assert.Equal(t, "Jane at Acme", session.ClientName)
	assert.Equal(t, "jane@acme.example", session.ClientEmail)
}

func TestAuthenticateWrongCode(t *testing.T) {
	svc, portal := newAuthFixture(t, time.Hour)

	_, err := svc.Authenticate(portal.ID, "wrong-code")
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
}

func TestAuthenticateUnknownPortal(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour)

	// indistinguishable from a wrong code
	_, err := svc.Authenticate("portal-missing", "letmein-1234")
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
}

func TestParseTokenExpired(t *testing.T) {
	svc, portal := newAuthFixture(t, -time.Minute)

	token, err := svc.Authenticate(portal.ID, "letmein-1234")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	svc, portal := newAuthFixture(t, time.Hour)

	token, err := svc.Authenticate(portal.ID, "letmein-1234")
	require.NoError(t, err)

	other := NewPortalAuthService(&fakePortalRepo{}, "other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour)

	_, err := svc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
