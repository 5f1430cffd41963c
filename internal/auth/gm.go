// Package auth issues and verifies game master tokens.
//
// Only the GM may edit presets, custom items and shops. Players read shops
// through share codes and never carry a token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleGM is the only role allowed to mutate campaign data
const RoleGM = "gm"

const issuer = "shopkeep"

var (
	// ErrInvalidToken is returned for malformed, expired or badly signed tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is returned for valid tokens without the GM role
	ErrForbidden = errors.New("gm role required")
)

// Claims identifies the caller
type Claims struct {
	Role       string
	CampaignID string
	ExpiresAt  time.Time
}

type gmClaims struct {
	jwt.RegisteredClaims
	Role       string `json:"role"`
	CampaignID string `json:"campaign_id"`
}

type contextKey string

const claimsKey contextKey = "claims"

// Issue signs a GM token for campaignID valid for ttl
func Issue(secret, campaignID string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token secret is required")
	}
	claims := gmClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:       RoleGM,
		CampaignID: campaignID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and checks it carries the GM role
func Verify(secret, token string) (Claims, error) {
	var claims gmClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	out := Claims{Role: claims.Role, CampaignID: claims.CampaignID}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.Role != RoleGM {
		return out, ErrForbidden
	}
	return out, nil
}

// FromContext returns the claims RequireGM attached to ctx
func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// RequireGM rejects requests without a valid GM bearer token.
// An empty secret disables the check.
func RequireGM(secret string, onError func(w http.ResponseWriter, status int, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				onError(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			claims, err := Verify(secret, strings.TrimPrefix(header, "Bearer "))
			switch {
			case errors.Is(err, ErrForbidden):
				onError(w, http.StatusForbidden, "GM role required")
				return
			case err != nil:
				onError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
