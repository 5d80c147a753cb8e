// Package auth provides credential sign-in, bearer token issuing, and the
// middleware guarding the API routes.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clearhire/talentview/internal/models"
	"github.com/clearhire/talentview/internal/store"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match a stored user.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Claims are the JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Service checks credentials against the store and issues HS256 tokens.
type Service struct {
	store  store.Store
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewService creates an auth service. ttl bounds how long issued tokens
// stay valid.
func NewService(st store.Store, secret []byte, issuer string, ttl time.Duration) *Service {
	return &Service{store: st, secret: secret, issuer: issuer, ttl: ttl}
}

// Login verifies the credentials and returns the user plus a signed token.
// The demo user store keeps plaintext passwords; comparison is exact.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}
	if user.Password != password {
		return models.User{}, "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name: user.Name,
		Role: user.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

// Verify parses and validates a token string, checking signature, expiry,
// and issuer.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid access token")
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, errors.New("invalid access token")
	}
	if claims.Subject == "" {
		return nil, errors.New("invalid access token")
	}
	return claims, nil
}

type contextKey struct{}

// ClaimsFromContext returns the verified claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// Middleware rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthorized(w, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if tokenString == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		claims, err := s.Verify(tokenString)
		if err != nil {
			unauthorized(w, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
