package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a fresh token pair and
	// revokes the presented token.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
