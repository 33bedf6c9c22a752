package helpers

import (
	"errors"
	"os"
	"time"

	"github.com/cristalhq/jwt/v5"
)

// CreateToken allows to create JWT session tokens
func CreateToken(vanity string) (string, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	token, err := jwt.NewBuilder(signer).Build(&jwt.RegisteredClaims{
		Subject:   vanity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
		Issuer:    "https://twitters.app",
	})
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

// CheckToken verifies a session token and returns its subject
func CheckToken(token string) (string, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	var claims jwt.RegisteredClaims
	if err := jwt.ParseClaims([]byte(token), verifier, &claims); err != nil {
		return "", err
	}

	if !claims.IsValidAt(time.Now()) {
		return "", errors.New("invalid time")
	}

	return claims.Subject, nil
}
