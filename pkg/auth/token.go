package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/listplus/listplus-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ParseIdentityToken validates a bearer token issued by the identity
// provider and returns the typed claims. The subject claim is used as the
// uid when the provider omits an explicit uid field.
func ParseIdentityToken(cfg config.AuthConfig, tokenString string) (*IdentityClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth secret is required")
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(claims.UID) == "" {
		claims.UID = strings.TrimSpace(claims.Subject)
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	return claims, nil
}
