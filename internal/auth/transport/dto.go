package transport

import "github.com/google/uuid"

// SignInRequest is the request body for signing in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignUpRequest is the request body for creating a staff account.
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,min=2,max=100"`
	Password    string `json:"password" validate:"required,min=8"`
}

// ChangePasswordRequest is the request body for replacing the signed-in
// user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// RefreshRequest is the request body for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignOutRequest is the request body for revoking a refresh token.
type SignOutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPairResponse carries a freshly issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MeResponse is the signed-in user's profile.
type MeResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

// UpdatePreferencesRequest is the request body for saving UI preferences.
type UpdatePreferencesRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// PreferencesResponse carries the user's stored UI preferences.
type PreferencesResponse struct {
	Theme string `json:"theme"`
}
