package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"gateprep/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	signed, err := CreateAccessToken("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("creating access token: %v", err)
	}

	var claims model.AccessClaims
	token, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parsing access token: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "u1@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "gateprep" {
		t.Fatalf("unexpected issuer: %q", claims.Issuer)
	}
}

func TestRefreshTokenHashRoundTrip(t *testing.T) {
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh-secret")

	token, err := CreateRefreshToken("u1")
	if err != nil {
		t.Fatalf("creating refresh token: %v", err)
	}

	hash, err := HashRefreshToken(token)
	if err != nil {
		t.Fatalf("hashing refresh token: %v", err)
	}
	if !VerifyRefreshTokenHash(hash, token) {
		t.Fatalf("hash must verify against the original token")
	}
	if VerifyRefreshTokenHash(hash, token+"x") {
		t.Fatalf("hash must not verify against a different token")
	}
}
