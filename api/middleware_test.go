package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawyerservices/lawyer-services-api/auth"
	"github.com/lawyerservices/lawyer-services-api/models"
)

func identityEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id.ID.Hex() + " " + id.Role))
	})
}

func TestMiddleware_Authenticated(t *testing.T) {
	v := auth.NewVerifier("s3cret")
	SetupGoGuardian(v)

	userID := primitive.NewObjectID()
	token, err := v.Sign(userID, models.RoleLawyer, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	Middleware(identityEcho(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, userID.Hex()+" lawyer", rr.Body.String())
}

func TestVerifyToken(t *testing.T) {
	v := auth.NewVerifier("s3cret")
	userID := primitive.NewObjectID()
	token, err := v.Sign(userID, models.RoleLawyer, time.Minute)
	require.NoError(t, err)

	info, err := verifyToken(v)(context.Background(), httptest.NewRequest("GET", "/", nil), token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), info.ID())
	assert.Equal(t, []string{models.RoleLawyer}, info.Groups())

	_, err = verifyToken(v)(context.Background(), httptest.NewRequest("GET", "/", nil), "abc123")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware_Rejects(t *testing.T) {
	v := auth.NewVerifier("s3cret")
	SetupGoGuardian(v)
	forged, err := auth.NewVerifier("other").Sign(primitive.NewObjectID(), models.RoleUser, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing", "", "No token, authorization denied"},
		{"forged", "Bearer " + forged, "Token is not valid"},
		{"garbage", "Bearer abc123", "Token is not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/messages", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			called := false
			Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(rr, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	RecoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})).ServeHTTP(rr, httptest.NewRequest("GET", "/api/messages", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rr.Body.String())
}

func TestMetricsMiddlewareSetsRequestID(t *testing.T) {
	r := New()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/api/messages/{userId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/messages/abc", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	rr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/messages/abc", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	r.ServeHTTP(rr, req)
	assert.Equal(t, "fixed-id", rr.Header().Get(RequestIDHeader))
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	New().ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive":true}`, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	rr := httptest.NewRecorder()
	New().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
