package impl

import (
	"context"
	"testing"
	"time"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/service"
	"tastebud/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCredentialFixture(t *testing.T) (usecase.CredentialUsecase, *memoryTxManager, *fakeCodec) {
	t.Helper()

	tm := newMemoryTxManager()
	codec := &fakeCodec{}
	svc := NewCredentialService(tm, &fakeHasher{}, codec, time.Hour, discardLogger())

	return svc, tm, codec
}

func seedUser(t *testing.T, tm *memoryTxManager, user *entity.User) {
	t.Helper()

	repo := (&memoryFactory{store: tm.store}).UserRepo()
	require.NoError(t, repo.Create(context.Background(), user))
}

func TestCredentialService_Login(t *testing.T) {
	svc, tm, _ := newCredentialFixture(t)
	seedUser(t, tm, &entity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:s3cret",
	})

	out, err := svc.Login(context.Background(), usecase.LoginInput{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "tok|alice", out.AccessToken)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, "alice", out.User.Username)
}

func TestCredentialService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, tm, _ := newCredentialFixture(t)
	seedUser(t, tm, &entity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:s3cret",
	})

	_, unknownErr := svc.Login(context.Background(), usecase.LoginInput{Username: "mallory", Password: "s3cret"})
	_, wrongErr := svc.Login(context.Background(), usecase.LoginInput{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestCredentialService_ResolveSession(t *testing.T) {
	svc, tm, _ := newCredentialFixture(t)
	seedUser(t, tm, &entity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:s3cret",
	})

	user, err := svc.ResolveSession(context.Background(), "tok|alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestCredentialService_ResolveSessionFailures(t *testing.T) {
	svc, tm, _ := newCredentialFixture(t)
	seedUser(t, tm, &entity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:s3cret",
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired token", fakeExpiredToken, domainerrors.ErrTokenExpired},
		{"malformed token", fakeMalformedToken, domainerrors.ErrTokenInvalid},
		{"bad signature", "garbage", domainerrors.ErrTokenInvalid},
		{"missing subject", fakeEmptySubject, service.ErrTokenMissingSubject},
		{"subject no longer exists", "tok|ghost", domainerrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveSession(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
