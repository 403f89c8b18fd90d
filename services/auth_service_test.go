package services

import (
	"context"
	"testing"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (*fixture, *AuthService, *repository.SessionRepository) {
	t.Helper()

	f := newFixture(t)
	f.session.Clear()
	db, err := repository.Open(t.TempDir())
	require.NoError(t, err)
	sessions := repository.NewSessionRepository(db)
	return f, NewAuthService(f.client, f.session, sessions, zap.NewNop()), sessions
}

func TestRegisterLoginProfile(t *testing.T) {
	_, auth, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, entity.RegisterRequest{
		Name: "Sari", Email: "Sari@Example.com", Phone: "0812", Password: "rahasia",
	})
	require.NoError(t, err)
	assert.Equal(t, "sari@example.com", reg.User.Email)

	auth.Logout()

	res, err := auth.Login(ctx, "sari@example.com", "rahasia")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	p, err := auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sari", p.Name)
	assert.Equal(t, "0812", p.Phone)
}

func TestLogin_BadCredentials(t *testing.T) {
	_, auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, entity.RegisterRequest{
		Name: "Sari", Email: "sari@example.com", Password: "rahasia",
	})
	require.NoError(t, err)
	auth.Logout()

	_, err = auth.Login(ctx, "sari@example.com", "salah")
	require.Error(t, err)

	_, err = auth.Profile(ctx)
	require.ErrorIs(t, err, api.ErrUnauthenticated)
}

func TestRestore_ReusesSavedToken(t *testing.T) {
	f, auth, sessions := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, entity.RegisterRequest{
		Name: "Sari", Email: "sari@example.com", Password: "rahasia",
	})
	require.NoError(t, err)

	saved, err := sessions.Token()
	require.NoError(t, err)
	require.NotEmpty(t, saved)

	f.session.Clear()
	auth.Restore()
	assert.True(t, f.session.Authenticated())

	auth.Logout()
	saved, err = sessions.Token()
	require.NoError(t, err)
	assert.Empty(t, saved)

	f.session.Clear()
	auth.Restore()
	assert.False(t, f.session.Authenticated())
}
