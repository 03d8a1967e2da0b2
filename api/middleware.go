package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	gauth "github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lawyerservices/lawyer-services-api/auth"
	"github.com/lawyerservices/lawyer-services-api/config"
)

// tokenCacheTTL bounds how long a verified token is trusted without re-checking its signature
const tokenCacheTTL = time.Minute

var authenticator gauth.Authenticator
var cache store.Cache

// SetupGoGuardian sets up the go-guardian bearer strategy on top of the token verifier
func SetupGoGuardian(v *auth.Verifier) {
	authenticator = gauth.New()
	cache = store.NewFIFO(context.Background(), tokenCacheTTL)
	tokenStrategy := bearer.New(verifyToken(v), cache)

	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

func verifyToken(v *auth.Verifier) bearer.AuthenticateFunc {
	return func(ctx context.Context, r *http.Request, token string) (gauth.Info, error) {
		id, err := v.Verify(token)
		if err != nil {
			return nil, err
		}
		return gauth.NewDefaultUser(id.ID.Hex(), id.ID.Hex(), []string{id.Role}, nil), nil
	}
}

// Middleware authenticates the bearer token and stores the caller's identity on the
// request context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authenticator == nil {
			config.ErrorStatus("Token is not valid", http.StatusUnauthorized, w, nil)
			return
		}
		if r.Header.Get("Authorization") == "" {
			config.ErrorStatus("No token, authorization denied", http.StatusUnauthorized, w, nil)
			return
		}

		info, err := authenticator.Authenticate(r)
		if err == nil {
			var id auth.Identity
			id, err = identityFromInfo(info)
			if err == nil {
				zap.S().Debugw("user authenticated", "userId", id.ID.Hex(), "role", id.Role)
				next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
				return
			}
		}

		zap.S().Debugw("unauthorized", "url", r.URL.Path, "error", err)
		config.ErrorStatus("Token is not valid", http.StatusUnauthorized, w, nil)
	})
}

func identityFromInfo(info gauth.Info) (auth.Identity, error) {
	id, err := primitive.ObjectIDFromHex(info.ID())
	if err != nil {
		return auth.Identity{}, err
	}
	groups := info.Groups()
	if len(groups) == 0 {
		return auth.Identity{}, errors.New("authenticated user has no role")
	}
	return auth.Identity{ID: id, Role: groups[0]}, nil
}
