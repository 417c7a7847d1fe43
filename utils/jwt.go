package utils

import (
	"errors"
	"time"

	"eventbook/config"

	"github.com/golang-jwt/jwt"
)

var errMissingSecret = errors.New("JWT secret is not configured")

func secretKey() ([]byte, error) {
	if config.AppConfig.JWTSecret == "" {
		return nil, errMissingSecret
	}
	return []byte(config.AppConfig.JWTSecret), nil
}

// GenerateToken creates a signed JWT token with the given subject (the user ID).
// The token expires after the specified duration.
func GenerateToken(subject string, duration time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ExtractIDFromToken extracts the subject from a valid JWT token string.
func ExtractIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
