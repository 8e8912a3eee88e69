package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/saifaleee/MetroArt/internal/auth"
	"github.com/saifaleee/MetroArt/internal/user"
)

// fakeUserStore is an in-memory auth.UserStore.
type fakeUserStore struct {
	seq   int
	users map[string]*user.User // keyed by id
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*user.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, username, email, passwordHash string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return nil, user.ErrAlreadyExists
		}
	}
	f.seq++
	u := &user.User{
		ID:           "user-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func newAuthService() (*auth.Service, *auth.TokenManager) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	return auth.NewService(newFakeUserStore(), tm), tm
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, tm := newAuthService()

	token, u, err := svc.Register(context.Background(), "claramonet", "clara@example.com", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, u)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, "claramonet", claims.Username)

	// The stored hash is bcrypt, never the plaintext.
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")))
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "claramonet", "clara@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "claramonet", "other@example.com", "correct-horse")
	require.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, tm := newAuthService()
	_, registered, err := svc.Register(context.Background(), "claramonet", "clara@example.com", "correct-horse")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, u, err := svc.Login(context.Background(), "clara@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)

		claims, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "clara@example.com", "wrong-horse")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestCurrentUserAfterDeletion(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.CurrentUser(context.Background(), "user-gone")
	require.ErrorIs(t, err, user.ErrNotFound)
}
