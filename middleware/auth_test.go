package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/controllers"
	"github.com/logabaalan777/property-listing/middleware"
	"github.com/logabaalan777/property-listing/utils"
)

func authed(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	jwtManager := utils.NewJWTManager("test-secret")

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(controllers.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/auth/profile", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(jwtManager, zap.NewNop())(next).ServeHTTP(rec, req)
	return rec, gotUserID
}

func TestAuthInjectsUserID(t *testing.T) {
	token, err := utils.NewJWTManager("test-secret").Generate("user-42")
	require.NoError(t, err)

	rec, userID := authed(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", userID)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := authed(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	rec, _ := authed(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsForgedToken(t *testing.T) {
	token, err := utils.NewJWTManager("other-secret").Generate("user-42")
	require.NoError(t, err)

	rec, _ := authed(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
