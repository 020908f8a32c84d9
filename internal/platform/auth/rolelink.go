package auth

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role-assignment links let an admin hand a signup URL to a future doctor or
// admin. The token in the link is a server-signed, time-limited JWT; the
// server verifies signature, expiry, and role claim before writing the role
// into the provider-controlled metadata partition. String heuristics on the
// client are never a substitute for this check.

type roleLinkClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// LinkIssuer signs and verifies role-assignment link tokens.
type LinkIssuer struct {
	signingKey []byte
	baseURL    string
	ttl        time.Duration
}

func NewLinkIssuer(signingKey []byte, baseURL string, ttl time.Duration) *LinkIssuer {
	return &LinkIssuer{signingKey: signingKey, baseURL: baseURL, ttl: ttl}
}

// Issue returns a role-assignment URL carrying the role and a signed token.
// Email scopes the link to the invited identity; it may be empty for an open
// invite.
func (li *LinkIssuer) Issue(role Role, email string) (string, error) {
	if !KnownRole(role) {
		return "", fmt.Errorf("unknown role: %s", role)
	}
	now := time.Now()
	claims := roleLinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(li.ttl)),
		},
		Role: string(role),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(li.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign role link token: %w", err)
	}

	q := url.Values{}
	q.Set("role", string(role))
	q.Set("token", token)
	return li.baseURL + "?" + q.Encode(), nil
}

// Redeem verifies a role-assignment token and returns the granted role and
// the email it was issued to. Expired, tampered, or unknown-role tokens fail.
func (li *LinkIssuer) Redeem(tokenStr string) (Role, string, error) {
	claims := &roleLinkClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return li.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid role link token: %w", err)
	}

	role := Role(claims.Role)
	if !KnownRole(role) {
		return "", "", fmt.Errorf("unknown role in token: %s", claims.Role)
	}
	return role, claims.Subject, nil
}
