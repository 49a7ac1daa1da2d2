package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"labportal_backend/platform/apperr"
)

func TestSignJWTClaims(t *testing.T) {
	s := &Service{}
	userID := uuid.New()

	signed, err := s.signJWT(userID, "ana@labportal.mx", 15*time.Minute, accessTokenType, "test-secret")
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token not valid")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims["sub"] != userID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], userID)
	}
	if claims["email"] != "ana@labportal.mx" {
		t.Errorf("email = %v", claims["email"])
	}
	if claims["type"] != accessTokenType {
		t.Errorf("type = %v", claims["type"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("exp claim: %v", err)
	}
	until := time.Until(exp.Time)
	if until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("expiry %s away, want about 15m", until)
	}
}

func TestCredentialErrorsAreUnauthorized(t *testing.T) {
	// Wrong current password on a password change, like a failed signin,
	// must surface as a 401 and never leak which check failed.
	for _, err := range []error{ErrInvalidCredentials, ErrTokenExpired, ErrTokenInvalid} {
		var appErr *apperr.Error
		if !errors.As(err, &appErr) {
			t.Fatalf("%v is not an application error", err)
		}
		if appErr.Kind != apperr.KindUnauthorized {
			t.Errorf("%v kind = %v, want unauthorized", err, appErr.Kind)
		}
	}
}

func TestSignJWTRejectsWrongSecret(t *testing.T) {
	s := &Service{}
	signed, err := s.signJWT(uuid.New(), "ana@labportal.mx", time.Minute, accessTokenType, "right-secret")
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}

	_, err = jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		t.Fatal("expected signature verification to fail")
	}
}
