package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/client/clienttest"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/services"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
	"github.com/dmitrijs2005/fcpanel/internal/common"
)

var alice = models.User{ID: 1, Username: "alice", Email: "alice"}

func newProvider(t *testing.T) (*Provider, *clienttest.AuthClient, *session.MemoryStore) {
	t.Helper()
	fc := &clienttest.AuthClient{Token: "abc", User: &alice}
	store := session.NewMemoryStore()
	return NewProvider(services.NewAuthService(fc, store, nil)), fc, store
}

func creds() models.LoginCredentials {
	return models.LoginCredentials{Username: "alice", Password: "pw"}
}

func TestProvider_StartsUnknown(t *testing.T) {
	p, _, _ := newProvider(t)
	assert.Equal(t, StateUnknown, p.State())
	assert.Nil(t, p.User())
	assert.Nil(t, p.Session())
	assert.False(t, p.Loading())
}

func TestHydrate_StoredSession_NoNetwork(t *testing.T) {
	p, fc, store := newProvider(t)
	require.NoError(t, store.Set(context.Background(), session.Snapshot{Token: "abc", User: alice}))

	assert.Equal(t, StateAuthenticated, p.Hydrate(context.Background()))
	assert.Equal(t, &alice, p.User())
	assert.Zero(t, fc.Calls(), "hydration must trust the stored session")
}

func TestHydrate_NoToken(t *testing.T) {
	p, fc, store := newProvider(t)
	store.Put(common.SessionUserKey, []byte(`{"id":1,"username":"alice"}`))

	assert.Equal(t, StateUnauthenticated, p.Hydrate(context.Background()))
	assert.Nil(t, p.User())
	assert.NoError(t, p.Err())
	assert.Zero(t, fc.Calls())
}

func TestHydrate_CorruptProfile(t *testing.T) {
	p, _, store := newProvider(t)
	store.Put(common.SessionTokenKey, []byte("abc"))
	store.Put(common.SessionUserKey, []byte("{"))

	assert.Equal(t, StateUnauthenticated, p.Hydrate(context.Background()))
	assert.Nil(t, p.User())
}

func TestLogin_Success(t *testing.T) {
	p, _, store := newProvider(t)
	p.Hydrate(context.Background())

	u, err := p.Login(context.Background(), creds())
	require.NoError(t, err)
	assert.Equal(t, &alice, u)
	assert.Equal(t, StateAuthenticated, p.State())
	assert.Equal(t, "abc", p.Session().Token)
	assert.False(t, p.Loading())

	tok, ok := store.Raw(common.SessionTokenKey)
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), tok)
}

func TestLogin_MissingBearer(t *testing.T) {
	p, fc, store := newProvider(t)
	fc.SignInErr = &client.Error{Kind: client.KindMalformed, Detail: "token not received from server"}
	p.Hydrate(context.Background())

	_, err := p.Login(context.Background(), creds())
	require.Error(t, err)
	assert.Equal(t, StateUnauthenticated, p.State())
	assert.Equal(t, err, p.Err())

	_, ok := store.Raw(common.SessionTokenKey)
	assert.False(t, ok)
	_, ok = store.Raw(common.SessionUserKey)
	assert.False(t, ok)
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	p, fc, _ := newProvider(t)
	_, err := p.Login(context.Background(), creds())
	require.NoError(t, err)

	fc.SignInErr = &client.Error{Kind: client.KindStatus, Status: 401, Detail: "bad credentials"}
	_, err = p.Login(context.Background(), models.LoginCredentials{Username: "bob", Password: "x"})
	require.Error(t, err)

	assert.Equal(t, StateAuthenticated, p.State())
	assert.Equal(t, "alice", p.User().Username)
	assert.EqualError(t, p.Err(), "bad credentials")
}

func TestRegister_AutoLogin(t *testing.T) {
	p, fc, _ := newProvider(t)
	form := models.RegisterForm{
		RegisterData:    models.RegisterData{Username: "alice", Password: "pw", Nom: "M", Prenom: "A", Email: "a@x"},
		ConfirmPassword: "pw",
	}

	u, err := p.Register(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 1, fc.SignUpCalls)
	assert.Equal(t, 1, fc.SignInCalls)
	assert.Equal(t, StateAuthenticated, p.State())
}

func TestRegister_PasswordMismatch_NoNetwork(t *testing.T) {
	p, fc, _ := newProvider(t)
	form := models.RegisterForm{
		RegisterData:    models.RegisterData{Username: "alice", Password: "pw", Nom: "M", Prenom: "A", Email: "a@x"},
		ConfirmPassword: "pw2",
	}

	_, err := p.Register(context.Background(), form)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPasswordMismatch)
	assert.Zero(t, fc.Calls())
	assert.Equal(t, StateUnauthenticated, p.State())
}

func TestLogout_ClearsEverything(t *testing.T) {
	p, fc, store := newProvider(t)
	_, err := p.Login(context.Background(), creds())
	require.NoError(t, err)
	calls := fc.Calls()

	require.NoError(t, p.Logout(context.Background()))
	assert.Equal(t, StateUnauthenticated, p.State())
	assert.Nil(t, p.User())
	assert.NoError(t, p.Err())
	assert.Equal(t, calls, fc.Calls())

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestLogout_WithoutSession(t *testing.T) {
	p, _, _ := newProvider(t)
	require.NoError(t, p.Logout(context.Background()))
	assert.Equal(t, StateUnauthenticated, p.State())
}

func TestLogin_Concurrent_LastWriteWins(t *testing.T) {
	p, _, store := newProvider(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Login(context.Background(), creds())
		}()
	}
	wg.Wait()

	assert.Equal(t, StateAuthenticated, p.State())
	snap, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p.Session().Token, snap.Token)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
}
