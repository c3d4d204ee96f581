package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/rider-docs-api/config"
	"github.com/linesmerrill/rider-docs-api/databases"
	"github.com/linesmerrill/rider-docs-api/models"
)

// Groups handed out to authenticated callers. Verifiers additionally carry
// their role (fuel-station or police) as a group.
const (
	RiderGroup    = "rider"
	VerifierGroup = "verifier"
)

// MiddlewareDB is a struct that holds the database
type MiddlewareDB struct {
	DB        databases.VerifierDatabase
	JWTSecret string
	CacheTTL  time.Duration
}

// RiderClaims are the claims the auth provider puts in a rider's JWT
type RiderClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// RiderTokenStrategyKey identifies the rider JWT strategy
const RiderTokenStrategyKey = auth.StrategyKey("RiderJWT.Strategy")

// emailExtension is where a rider's email claim is kept on auth.Info
const emailExtension = "email"

var authenticator auth.Authenticator
var cache store.Cache

// SetupGoGuardian sets up the go-guardian middleware. The cache only ever holds
// tokens handed out by CreateToken; rider JWTs are checked on every request so
// their expiry is honored.
func (m MiddlewareDB) SetupGoGuardian() {
	ttl := m.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), ttl)
	basicStrategy := basic.New(m.ValidateVerifier, cache)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
	authenticator.EnableStrategy(RiderTokenStrategyKey, riderTokenStrategy{validate: m.ValidateRiderToken})
}

// riderTokenStrategy validates the bearer JWT each time, without caching
type riderTokenStrategy struct {
	validate bearer.AuthenticateFunc
}

func (s riderTokenStrategy) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	token, err := bearer.Token(r)
	if err != nil {
		return nil, err
	}
	return s.validate(ctx, r, token)
}

// ValidateVerifier checks a verifier's email and password
func (m MiddlewareDB) ValidateVerifier(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	ctx, cancel := WithQueryTimeout(ctx)
	defer cancel()

	v, err := m.DB.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get verifier by email")
	}

	err = bcrypt.CompareHashAndPassword([]byte(v.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}
	return auth.NewDefaultUser(v.Email, v.ID, []string{VerifierGroup, v.Role}, nil), nil
}

// ValidateRiderToken verifies an HS256 JWT from the auth provider. The
// subject is the rider id.
func (m MiddlewareDB) ValidateRiderToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	if m.JWTSecret == "" {
		return nil, errors.New("rider tokens are not accepted: no secret configured")
	}
	claims := &RiderClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return NewRider(claims.Subject, claims.Email), nil
}

// NewRider builds the caller info of a rider. The user name falls back to the
// rider id when there is no email.
func NewRider(riderID, email string) auth.Info {
	name := email
	if name == "" {
		name = riderID
	}
	var exts map[string][]string
	if email != "" {
		exts = map[string][]string{emailExtension: {email}}
	}
	return auth.NewDefaultUser(name, riderID, []string{RiderGroup}, exts)
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	zap.S().Errorw("unauthorized",
		"url", r.URL,
		"error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "unauthorized"}`))
}

// Authenticate returns middleware admitting callers in any of groups, or any
// authenticated caller when groups is empty
func Authenticate(groups ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticator.Authenticate(r)
			if err != nil {
				unauthorized(w, r, err)
				return
			}
			if len(groups) > 0 {
				allowed := false
				for _, g := range groups {
					if InGroup(user, g) {
						allowed = true
						break
					}
				}
				if !allowed {
					unauthorized(w, r, fmt.Errorf("user %s is not in %v", user.UserName(), groups))
					return
				}
			}
			zap.S().Debugf("User %s Authenticated\n", user.UserName())
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Middleware adds some basic header authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return Authenticate()(next)
}

// RiderOnly admits authenticated riders
func RiderOnly(next http.Handler) http.Handler {
	return Authenticate(RiderGroup)(next)
}

// VerifierOnly admits authenticated fuel stations and police
func VerifierOnly(next http.Handler) http.Handler {
	return Authenticate(VerifierGroup)(next)
}

// OptionalAuth lets anonymous requests through untouched. A request that does
// send credentials must get them right.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		Middleware(next).ServeHTTP(w, r)
	})
}

// CreateToken exchanges a verifier's basic credentials for a bearer token
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		unauthorized(w, r, errors.New("no authenticated user"))
		return
	}

	token := uuid.New().String()
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	if err := auth.Append(tokenStrategy, token, user, r); err != nil {
		config.ErrorStatus("failed to create token", http.StatusInternalServerError, w, err)
		return
	}

	role := ""
	for _, g := range user.Groups() {
		if g != VerifierGroup {
			role = g
		}
	}
	responseBody, err := json.Marshal(models.TokenResponse{
		Token: token,
		ID:    user.ID(),
		Role:  role,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseBody)
}

// RevokeToken revokes a token
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if reqToken == "" {
		config.ErrorStatus("no bearer token to revoke", http.StatusBadRequest, w, nil)
		return
	}

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	if err := auth.Revoke(tokenStrategy, reqToken, r); err != nil {
		config.ErrorStatus("failed to revoke token", http.StatusInternalServerError, w, err)
		return
	}
	b, _ := json.Marshal(map[string]string{"revoked token": reqToken})
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
