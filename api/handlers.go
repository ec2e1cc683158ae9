package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sheikhshariarnehal/portfolio-backend/config"
	"github.com/sheikhshariarnehal/portfolio-backend/store"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	imageHandler   imageHandler
	authHandler    authHandler
	healthHandler  healthHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(st store.Store, c map[string]string, startupTime time.Time) *routeHandlers {
	jwtSecret := []byte(config.GetString(c, config.KeyJWTSecret, "change-me"))
	tokenTTL := time.Duration(config.GetInt(c, config.KeyJWTExpiresHrs, 24)) * time.Hour
	maxFileSize := config.GetInt64(c, config.KeyMaxFileSize, 5*1024*1024)

	return &routeHandlers{
		projectHandler: newProjectHandler(st.ProjectRepo()),
		imageHandler:   newImageHandler(st.ImageRepo(), maxFileSize),
		authHandler: newAuthHandler(
			config.GetString(c, config.KeyAdminUsername, "admin"),
			config.GetString(c, config.KeyAdminPassword, "admin123"),
			jwtSecret,
			tokenTTL,
		),
		healthHandler: newHealthHandler(startupTime),
	}
}

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteSuccess(w, map[string]interface{}{
			"status": "ok",
			"uptime": time.Since(h.startupTime).String(),
		}, "")
	}
}
