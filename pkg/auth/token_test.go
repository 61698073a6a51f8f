package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/listplus/listplus-backend/pkg/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{Secret: "test-secret", Issuer: "listplus-test"}
}

func signToken(t *testing.T, cfg config.AuthConfig, claims jwt.Claims, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestParseIdentityToken(t *testing.T) {
	cfg := testAuthConfig()
	raw := signToken(t, cfg, IdentityClaims{
		UID:   "user-1",
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	claims, err := ParseIdentityToken(cfg, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "user-1" {
		t.Fatalf("unexpected uid %q", claims.UID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestParseIdentityTokenSubjectFallback(t *testing.T) {
	cfg := testAuthConfig()
	raw := signToken(t, cfg, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "subject-uid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	claims, err := ParseIdentityToken(cfg, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "subject-uid" {
		t.Fatalf("expected subject fallback, got %q", claims.UID)
	}
}

func TestParseIdentityTokenRejectsMissingSubject(t *testing.T) {
	cfg := testAuthConfig()
	raw := signToken(t, cfg, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	if _, err := ParseIdentityToken(cfg, raw); err == nil {
		t.Fatal("expected error for token without uid or subject")
	}
}

func TestParseIdentityTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testAuthConfig()
	raw := signToken(t, cfg, IdentityClaims{
		UID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	if _, err := ParseIdentityToken(cfg, raw); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseIdentityTokenRejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	raw := signToken(t, cfg, IdentityClaims{
		UID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, jwt.SigningMethodHS256)

	if _, err := ParseIdentityToken(cfg, raw); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseIdentityTokenRejectsNoneAlgorithm(t *testing.T) {
	cfg := testAuthConfig()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, IdentityClaims{
		UID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: cfg.Issuer,
		},
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := ParseIdentityToken(cfg, raw); err == nil {
		t.Fatal("expected rejection of unsigned token")
	}
}

func TestParseIdentityTokenRequiresSecret(t *testing.T) {
	if _, err := ParseIdentityToken(config.AuthConfig{Issuer: "x"}, "whatever"); err == nil {
		t.Fatal("expected missing secret error")
	}
}
