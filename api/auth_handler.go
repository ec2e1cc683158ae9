package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/sheikhshariarnehal/portfolio-backend/errs"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	adminUsername string
	adminPassword string
	jwtSecret     []byte
	tokenTTL      time.Duration
}

func newAuthHandler(adminUsername, adminPassword string, jwtSecret []byte, tokenTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login exchanges the admin credential pair for a signed capability
// token. The configured password may be a bcrypt hash; a plain-text
// password still works but gets a logged warning.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if len(req.Username) < 3 || len(req.Username) > 50 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"validation failed", "username", "Username must be between 3 and 50 characters"))
			return
		}
		if len(req.Password) < 6 {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"validation failed", "password", "Password must be at least 6 characters long"))
			return
		}

		if req.Username != h.adminUsername {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		if !h.passwordMatches(req.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := signAdminToken(h.jwtSecret, h.adminUsername, h.tokenTTL)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		h.responder.WriteSuccess(w, map[string]interface{}{
			"token": token,
			"user": map[string]string{
				"username": h.adminUsername,
				"role":     "admin",
			},
			"expiresIn": h.tokenTTL.String(),
		}, "Login successful")
	}
}

func (h authHandler) passwordMatches(password string) bool {
	if strings.HasPrefix(h.adminPassword, "$2a$") || strings.HasPrefix(h.adminPassword, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(h.adminPassword), []byte(password)) == nil
	}

	h.logger.Warn().Msg("Using plain text admin password; hash it for production")
	return password == h.adminPassword
}

// verify confirms token validity; reaching the handler means the auth
// middleware accepted the token.
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ctxGetClaims(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		h.responder.WriteSuccess(w, map[string]interface{}{
			"user": map[string]string{
				"username": claims.Username,
				"role":     claims.Role,
			},
			"isAuthenticated": true,
		}, "Token is valid")
	}
}

// logout is stateless; the client drops the token. The event is logged
// for monitoring.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ctxGetClaims(r.Context()); ok {
			h.logger.Info().Str("username", claims.Username).Msg("admin logged out")
		}

		h.responder.WriteSuccess(w, nil, "Logout successful")
	}
}

func (h authHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ctxGetClaims(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		h.responder.WriteSuccess(w, map[string]interface{}{
			"user": map[string]interface{}{
				"username":  claims.Username,
				"role":      claims.Role,
				"loginTime": claims.IssuedAt.Time.UTC().Format(time.RFC3339),
			},
		}, "")
	}
}
