package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	router, _ := newTestRouter(t, `[]`)

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
			Username: "admin",
			Password: "admin123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		token := data["token"].(string)
		require.NotEmpty(t, token)

		claims, err := parseAdminToken([]byte(testJWTSecret), token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
			Username: "admin",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong username", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
			Username: "root",
			Password: "admin123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects short username before checking credentials", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
			Username: "ab",
			Password: "admin123",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", loginRequest{
			Username: "admin",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBcryptPassword(t *testing.T) {
	// A $2a$-prefixed configured password must take the bcrypt path.
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	h := newAuthHandler("admin", string(hash), []byte(testJWTSecret), time.Hour)

	assert.True(t, h.passwordMatches("secret"))
	assert.False(t, h.passwordMatches("admin123"))
}

func TestTokenLifecycle(t *testing.T) {
	t.Run("sign and parse round trip", func(t *testing.T) {
		token, err := signAdminToken([]byte(testJWTSecret), "admin", time.Hour)
		require.NoError(t, err)

		claims, err := parseAdminToken([]byte(testJWTSecret), token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := signAdminToken([]byte(testJWTSecret), "admin", -time.Minute)
		require.NoError(t, err)

		_, err = parseAdminToken([]byte(testJWTSecret), token)
		require.Error(t, err)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := signAdminToken([]byte("other-secret"), "admin", time.Hour)
		require.NoError(t, err)

		_, err = parseAdminToken([]byte(testJWTSecret), token)
		require.Error(t, err)
	})
}

func TestAuthenticatedEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, `[]`)

	t.Run("verify with valid token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/verify", adminToken(t), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, true, data["isAuthenticated"])
	})

	t.Run("verify without token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/verify", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile returns claims", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/auth/profile", adminToken(t), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
		assert.Equal(t, "admin", user["username"])
		assert.Equal(t, "admin", user["role"])
	})

	t.Run("logout succeeds", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/logout", adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage bearer token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/verify", "not.a.jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
