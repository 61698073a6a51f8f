package auth

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims is the verified payload of a bearer token minted by the
// external identity provider. UID is the immutable subject used as the user
// id throughout the service.
type IdentityClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
