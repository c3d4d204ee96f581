// Package testhelpers builds credentials for handler and middleware tests.
package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/rider-docs-api/models"
)

// JWTSecret is the rider token secret tests configure the app with
const JWTSecret = "test-jwt-secret"

// RiderJWT signs a rider token the way the auth provider does
func RiderJWT(t *testing.T, secret, riderID, email string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": riderID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// Verifier returns a verifier record whose stored hash matches password
func Verifier(t *testing.T, id, email, password, role string) models.Verifier {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return models.Verifier{
		ID:       id,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Name:     email,
	}
}
