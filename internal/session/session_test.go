package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/storage/memory"
)

var loginAt = time.Date(2023, 4, 20, 9, 0, 0, 0, time.UTC)

func newService(kv storage.Storage) *session.Service {
	return session.NewService(kv, "test-secret", time.Hour).WithClock(func() time.Time { return loginAt })
}

func TestService_Login(t *testing.T) {
	type args struct {
		creds session.Credentials
	}

	type testCase struct {
		name    string
		args    args
		wantErr bool
	}

	tests := []testCase{
		{name: "Success", args: args{creds: session.Credentials{Username: " ana ", Password: "1234", RememberMe: true}}},
		{name: "MissingUsername", args: args{creds: session.Credentials{Username: "  ", Password: "1234"}}, wantErr: true},
		{name: "MissingPassword", args: args{creds: session.Credentials{Username: "ana"}}, wantErr: true},
		{name: "ShortPassword", args: args{creds: session.Credentials{Username: "ana", Password: "123"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := memory.New()
			svc := newService(kv)

			tok, err := svc.Login(ctx, tt.args.creds)
			if tt.wantErr {
				assert.ErrorIs(t, err, session.ErrValidation)

				_, err := svc.Current(ctx)
				assert.ErrorIs(t, err, session.ErrNoSession)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ana", tok.Username)
			assert.Equal(t, loginAt.Add(time.Hour), tok.ExpiresAt)

			sess, err := svc.Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, "ana", sess.Username)
			assert.True(t, sess.RememberMe)
			assert.Equal(t, loginAt, sess.LoggedInAt)

			user, err := svc.Verify(tok.Token)
			require.NoError(t, err)
			assert.Equal(t, "ana", user)
		})
	}
}

func TestService_Verify(t *testing.T) {
	ctx := context.Background()
	svc := newService(memory.New())

	tok, err := svc.Login(ctx, session.Credentials{Username: "ana", Password: "secret"})
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		later := svc.WithClock(func() time.Time { return loginAt.Add(2 * time.Hour) })

		_, err := later.Verify(tok.Token)
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := session.NewService(memory.New(), "another-secret", time.Hour).WithClock(func() time.Time { return loginAt })

		_, err := other.Verify(tok.Token)
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	svc := newService(kv)

	_, err := svc.Login(ctx, session.Credentials{Username: "ana", Password: "1234"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = kv.Get(ctx, storage.KeySession)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
