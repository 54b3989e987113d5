package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/auth"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/jwt"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt    jwt.Service
	google oauth.GoogleService
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, google oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		jwt:            jwtService,
		google:         google,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if userData.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.buildLoginResponse(&userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context) (string, string) {
	state := a.google.GenerateState("")
	return a.google.RedirectURL(state), state
}

// OAuthCallbackGoogle implements auth.AuthService. Only users already
// registered by an administrator may log in via Google.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("%w: %v", auth.ErrOAuthExchangeFailed, err)
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("%w: %v", auth.ErrOAuthExchangeFailed, err)
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return a.buildLoginResponse(&userData)
}

// Refresh implements auth.AuthService. Issues a fresh pair and revokes the
// presented refresh token so it cannot be replayed.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	token, err := jwtauth.VerifyToken(a.jwt.JWTAuth(), refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	if a.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenPair{}, auth.ErrRefreshTokenRevoked
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenPair{}, err
	}

	pair, err := a.issueTokens(&userData)
	if err != nil {
		return auth.TokenPair{}, err
	}

	a.jwt.RevokeToken(refreshToken)

	return pair, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.jwt.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) buildLoginResponse(userData *user.User) (auth.LoginResponse, error) {
	pair, err := a.issueTokens(userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		UserID:    userData.ID,
		Email:     userData.Email,
		Name:      userData.Name,
		Role:      string(userData.Role),
		CompanyID: userData.CompanyID,
		TokenPair: pair,
	}, nil
}

func (a *AuthServiceImpl) issueTokens(userData *user.User) (auth.TokenPair, error) {
	access, accessExp, err := a.jwt.GenerateAccessToken(userData.ID, userData.Email, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, refreshExp, err := a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
