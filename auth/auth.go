// Package auth verifies the HS256 tokens issued by the account service and carries the
// caller's identity through request contexts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawyerservices/lawyer-services-api/models"
)

var (
	// ErrMissingToken is returned when the request carries no token at all
	ErrMissingToken = errors.New("no token provided")
	// ErrInvalidToken is returned for bad signatures, expired tokens and malformed claims
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload of a session token
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller
type Identity struct {
	ID   primitive.ObjectID
	Role string
}

// IsLawyer reports whether the caller signed in as a lawyer
func (i Identity) IsLawyer() bool {
	return i.Role == models.RoleLawyer
}

// Verifier checks token signatures against a shared secret
type Verifier struct {
	secret []byte
}

// NewVerifier returns a Verifier for secret. An empty secret rejects every token.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses token and returns the identity it carries
func (v *Verifier) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return Identity{}, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: id claim is not an object id", ErrInvalidToken)
	}
	role := claims.Role
	if role == "" {
		role = models.RoleUser
	}
	return Identity{ID: id, Role: role}, nil
}

// Sign issues a token for id and role that expires after ttl
func (v *Verifier) Sign(id primitive.ObjectID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:   id.Hex(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// TokenFromRequest reads the bearer token from the Authorization header, falling back to
// the token query parameter used by websocket clients
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
