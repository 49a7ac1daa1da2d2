package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"labportal_backend/internal/auth/password"
	"labportal_backend/internal/auth/repository"
	"labportal_backend/internal/auth/token"
	"labportal_backend/internal/auth/transport"
	"labportal_backend/internal/events"
	"labportal_backend/platform/apperr"
	"labportal_backend/platform/config"
	"labportal_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")
	ErrTokenExpired       = apperr.Unauthorized("token expired")
	ErrTokenInvalid       = apperr.Unauthorized("token invalid")
)

const accessTokenType = "access"

// Service provides authentication business logic.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SignIn checks credentials and issues a token pair.
func (s *Service) SignIn(ctx context.Context, req transport.SignInRequest) (*transport.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("signin", email, false, "unknown user")
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("signin", email, false, "wrong password")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.AuthEvent("signin", email, true, "")
	s.bus.Publish(ctx, events.UserSignedIn{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})
	return pair, nil
}

// SignUp creates a staff account and signs it in.
func (s *Service) SignUp(ctx context.Context, req transport.SignUpRequest) (*transport.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else {
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
			return nil, err
		}
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, email, req.DisplayName, hash)
	if err != nil {
		return nil, err
	}

	s.log.AuthEvent("signup", email, true, "")
	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*transport.TokenPairResponse, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return nil, ErrTokenExpired
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, userID)
}

// SignOut revokes the presented refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// ChangePassword verifies the current password, stores the new hash, and
// revokes every outstanding refresh token so old sessions cannot renew.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req transport.ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := password.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
		s.log.AuthEvent("change_password", user.Email, false, "wrong current password")
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.repo.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return err
	}

	s.log.AuthEvent("change_password", user.Email, true, "")
	return nil
}

// Me returns the signed-in user's profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*transport.MeResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &transport.MeResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

// GetPreferences returns the user's stored UI preferences.
func (s *Service) GetPreferences(ctx context.Context, userID uuid.UUID) (*transport.PreferencesResponse, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &transport.PreferencesResponse{Theme: prefs.Theme}, nil
}

// UpdatePreferences saves the user's UI preferences.
func (s *Service) UpdatePreferences(ctx context.Context, userID uuid.UUID, req transport.UpdatePreferencesRequest) (*transport.PreferencesResponse, error) {
	prefs, err := s.repo.UpsertPreferences(ctx, userID, req.Theme)
	if err != nil {
		return nil, err
	}
	return &transport.PreferencesResponse{Theme: prefs.Theme}, nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (*transport.TokenPairResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.signJWT(user.ID, user.Email, s.cfg.GetAccessTokenTTL(), accessTokenType, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return nil, err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return nil, err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		return nil, err
	}

	return &transport.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) signJWT(userID uuid.UUID, email string, ttl time.Duration, tokenType, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"type":  tokenType,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(secret))
}
