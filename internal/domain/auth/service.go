package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context) (authURL string, state string)
	OAuthCallbackGoogle(ctx context.Context, code string) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
