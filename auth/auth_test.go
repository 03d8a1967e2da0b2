package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lawyerservices/lawyer-services-api/models"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("s3cret")
	id := primitive.NewObjectID()

	token, err := v.Sign(id, models.RoleLawyer, time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.IsLawyer())
}

func TestVerifier_DefaultsRoleToUser(t *testing.T) {
	v := NewVerifier("s3cret")
	token, err := v.Sign(primitive.NewObjectID(), "", time.Minute)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.False(t, got.IsLawyer())
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("s3cret")
	id := primitive.NewObjectID()

	expired, err := v.Sign(id, models.RoleUser, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewVerifier("other").Sign(id, models.RoleUser, time.Minute)
	require.NoError(t, err)

	badID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: "not-an-id"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: id.Hex()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": otherKey,
		"bad id claim": badID,
		"alg none":     none,
		"garbage":      "abc.def.ghi",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = v.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifier_EmptySecretRejectsEverything(t *testing.T) {
	token, err := NewVerifier("s3cret").Sign(primitive.NewObjectID(), models.RoleUser, time.Minute)
	require.NoError(t, err)

	_, err = NewVerifier("").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/socket?token=from-query", nil)
	assert.Equal(t, "from-query", TokenFromRequest(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", TokenFromRequest(r))

	r = httptest.NewRequest("GET", "/socket", nil)
	r.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", TokenFromRequest(r))
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id := Identity{ID: primitive.NewObjectID(), Role: models.RoleUser}
	got, ok := FromContext(WithIdentity(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
