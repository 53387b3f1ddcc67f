package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/resilia/internal/common"
	"github.com/dmitrijs2005/resilia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, f *fixture, email, password string) {
	t.Helper()
	require.NoError(t, f.accounts.Register(context.Background(), models.RegisterInput{Email: email, Password: password}))
}

func TestScenario_RegisterDuplicateLoginWrongPassword(t *testing.T) {
	substrates(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		require.NoError(t, f.accounts.Register(ctx, models.RegisterInput{Email: "a@x.com", Password: "secret123"}))

		err := f.accounts.Register(ctx, models.RegisterInput{Email: "A@X.com ", Password: "anything"})
		require.ErrorIs(t, err, common.ErrDuplicateEmail)

		u, err := f.sessions.Login(ctx, "a@x.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", u.Email)

		_, err = f.sessions.Login(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestLogin_SucceedsForEveryRegisteredAccount(t *testing.T) {
	f := memoryFixture(t)
	ctx := context.Background()
	creds := map[string]string{
		"a@x.com":         "secret123",
		"Bob@Example.org": "hunter22",
		" c@x.io ":        "pa ss",
	}
	for e, p := range creds {
		register(t, f, e, p)
	}

	for e, p := range creds {
		u, err := f.sessions.Login(ctx, e, p)
		require.NoError(t, err, "login %q", e)
		assert.Equal(t, common.NormalizeEmail(e), u.Email)
		assert.Equal(t, u, f.sessions.Current(ctx))
	}
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	substrates(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		register(t, f, "a@x.com", "secret123")
		register(t, f, "b@x.com", "other")

		before, err := f.sessions.Login(ctx, "a@x.com", "secret123")
		require.NoError(t, err)

		_, err = f.sessions.Login(ctx, "b@x.com", "wrong")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
		_, err = f.sessions.Login(ctx, "nobody@x.com", "secret123")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)

		assert.Equal(t, before, f.sessions.Current(ctx))
	})
}

func TestLogin_ErrorDoesNotRevealWhichCredentialFailed(t *testing.T) {
	f := memoryFixture(t)
	ctx := context.Background()
	register(t, f, "a@x.com", "secret123")

	_, wrongPassword := f.sessions.Login(ctx, "a@x.com", "nope")
	_, unknownEmail := f.sessions.Login(ctx, "z@x.com", "secret123")
	require.Error(t, wrongPassword)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_StoresFullRecordCopy(t *testing.T) {
	f := memoryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.accounts.Register(ctx, models.RegisterInput{
		Email: "a@x.com", Password: "secret123", Name: "Ana", Username: "ana", Gender: "f", Age: 31,
	}))

	_, err := f.sessions.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)

	cur := f.sessions.Current(ctx)
	require.NotNil(t, cur)
	assert.Equal(t, f.accounts.List(ctx)[0], *cur)
}

func TestLogout_IsIdempotent(t *testing.T) {
	substrates(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		register(t, f, "a@x.com", "secret123")
		_, err := f.sessions.Login(ctx, "a@x.com", "secret123")
		require.NoError(t, err)

		require.NoError(t, f.sessions.Logout(ctx))
		assert.Nil(t, f.sessions.Current(ctx))

		require.NoError(t, f.sessions.Logout(ctx))
		assert.Nil(t, f.sessions.Current(ctx))
	})
}

func TestLogout_WithoutSession(t *testing.T) {
	f := memoryFixture(t)
	require.NoError(t, f.sessions.Logout(context.Background()))
}

func TestCurrent_CorruptSessionIsLoggedOut(t *testing.T) {
	f := memoryFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Set(ctx, KeySession, []byte(`{"email": 42`)))

	assert.Nil(t, f.sessions.Current(ctx))

	_, err := f.sessions.ApplyProfileUpdate(ctx, models.ProfilePatch{Name: strPtr("n")})
	require.ErrorIs(t, err, common.ErrNoActiveSession)
}

func TestCurrent_IsASnapshot(t *testing.T) {
	f := memoryFixture(t)
	ctx := context.Background()
	register(t, f, "a@x.com", "secret123")
	_, err := f.sessions.Login(ctx, "a@x.com", "secret123")
	require.NoError(t, err)

	// a direct directory update does not touch the session
	_, err = f.accounts.Update(ctx, "a@x.com", models.ProfilePatch{Name: strPtr("Changed")})
	require.NoError(t, err)
	assert.Empty(t, f.sessions.Current(ctx).Name)
}

func TestApplyProfileUpdate_RefreshesSession(t *testing.T) {
	substrates(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		register(t, f, "a@x.com", "secret123")
		_, err := f.sessions.Login(ctx, "a@x.com", "secret123")
		require.NoError(t, err)

		u, err := f.sessions.ApplyProfileUpdate(ctx, models.ProfilePatch{
			Name:             strPtr("Ana"),
			Goals:            strPtr("sleep 8h"),
			EmergencyContact: strPtr("+1 555 0100"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Name)

		cur := f.sessions.Current(ctx)
		require.NotNil(t, cur)
		assert.Equal(t, "Ana", cur.Name)
		assert.Equal(t, "sleep 8h", cur.Goals)
		assert.Equal(t, "+1 555 0100", cur.EmergencyContact)
		assert.Equal(t, f.accounts.List(ctx)[0], *cur)
	})
}

func TestApplyProfileUpdate_NeverChangesCredentials(t *testing.T) {
	substrates(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		register(t, f, "a@x.com", "secret123")
		_, err := f.sessions.Login(ctx, "a@x.com", "secret123")
		require.NoError(t, err)

		u, err := f.sessions.ApplyProfileUpdate(ctx, models.ProfilePatch{
			Email:    strPtr("x"),
			Password: strPtr("y"),
			Username: strPtr("ana"),
		})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Equal(t, "secret123", u.Password)

		stored := f.accounts.List(ctx)
		require.Len(t, stored, 1)
		assert.Equal(t, "a@x.com", stored[0].Email)
		assert.Equal(t, "secret123", stored[0].Password)
		assert.Equal(t, "ana", stored[0].Username)

		_, err = f.sessions.Login(ctx, "x", "y")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestApplyProfileUpdate_RequiresSession(t *testing.T) {
	f := memoryFixture(t)

	_, err := f.sessions.ApplyProfileUpdate(context.Background(), models.ProfilePatch{Name: strPtr("n")})
	require.ErrorIs(t, err, common.ErrNoActiveSession)
}

func TestApplyProfileUpdate_AccountVanished(t *testing.T) {
	substrates(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		register(t, f, "a@x.com", "secret123")
		before, err := f.sessions.Login(ctx, "a@x.com", "secret123")
		require.NoError(t, err)

		require.NoError(t, f.repo.Delete(ctx, KeyUsers))

		_, err = f.sessions.ApplyProfileUpdate(ctx, models.ProfilePatch{Name: strPtr("n")})
		require.ErrorIs(t, err, common.ErrNotFound)
		assert.Equal(t, before, f.sessions.Current(ctx), "session is kept when the update fails")
	})
}

func TestLogout_WriteFailureIsReported(t *testing.T) {
	f := newFixture(t, brokenRepo{})

	err := f.sessions.Logout(context.Background())
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	require.ErrorIs(t, err, errBroken)
}

func TestUnreadableStorage_FailsOpen(t *testing.T) {
	f := newFixture(t, unreadableRepo{})
	ctx := context.Background()

	assert.Nil(t, f.sessions.Current(ctx))
	assert.Empty(t, f.accounts.List(ctx))
	assert.Empty(t, f.activity.ListMoods(ctx))

	_, err := f.sessions.Login(ctx, "a@x.com", "p")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}
