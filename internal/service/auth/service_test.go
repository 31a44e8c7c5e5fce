package auth

import (
	"context"
	"testing"

	"github.com/shiftdesk/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/user"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by email
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newService(t *testing.T) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"jane@example.com": {
			ID:           "user-1",
			Name:         "Jane",
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			IsAdmin:      true,
		},
	}}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, jwtService)
}

func TestLogin(t *testing.T) {
	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		svc := newService(t)

		resp, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "user-1", resp.UserID)
		assert.True(t, resp.IsAdmin)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects a malformed request", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func login(t *testing.T, svc auth.AuthService) auth.TokenResponse {
	t.Helper()
	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRefresh(t *testing.T) {
	t.Run("issues a new token pair and revokes the old refresh token", func(t *testing.T) {
		svc := newService(t)
		resp := login(t, svc)

		refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
		assert.Equal(t, "user-1", refreshed.UserID)

		// Single-use: the presented token no longer works.
		_, err = svc.Refresh(context.Background(), resp.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		svc := newService(t)
		resp := login(t, svc)

		_, err := svc.Refresh(context.Background(), resp.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage and empty tokens", func(t *testing.T) {
		svc := newService(t)

		_, err := svc.Refresh(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		_, err = svc.Refresh(context.Background(), "")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes the refresh token", func(t *testing.T) {
		svc := newService(t)
		resp := login(t, svc)

		require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))

		_, err := svc.Refresh(context.Background(), resp.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		svc := newService(t)
		err := svc.Logout(context.Background(), "")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
