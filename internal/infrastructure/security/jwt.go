// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrEmptySecret is returned when a token operation is attempted without a
// signing secret. Tokens signed with an empty key are trivially forgeable,
// so neither side ever accepts one.
var ErrEmptySecret = errors.New("jwt secret is empty")

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	if jwtSecret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateAdminToken creates a signed JWT carrying the admin capability
func GenerateAdminToken(jwtSecret string, ttl time.Duration) (string, error) {
	if jwtSecret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"role": "admin",
		"type": "admin_auth",
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
