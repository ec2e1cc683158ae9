package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the REST surface. Reads are public; every mutating
// route sits behind the admin token middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, imagesDir string) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public endpoints
		r.Get("/api/health", handlers.healthHandler.health())
		r.Post("/api/auth/login", handlers.authHandler.login())

		r.Get("/api/projects", handlers.projectHandler.listProjects())
		r.Get("/api/projects/categories", handlers.projectHandler.getCategories())
		r.Get("/api/projects/images/list", handlers.imageHandler.listImages())
		r.Get("/api/projects/{id}", handlers.projectHandler.getProject())

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/api/projects", handlers.projectHandler.createProject())
			r.Put("/api/projects/{id}", handlers.projectHandler.updateProject())
			r.Delete("/api/projects/{id}", handlers.projectHandler.deleteProject())

			r.Post("/api/projects/upload", handlers.imageHandler.uploadImage())
			r.Delete("/api/projects/images/{filename}", handlers.imageHandler.deleteImage())

			r.Post("/api/auth/verify", handlers.authHandler.verify())
			r.Post("/api/auth/logout", handlers.authHandler.logout())
			r.Get("/api/auth/profile", handlers.authHandler.profile())
		})
	})

	// Serve stored project images for the portfolio site and dashboard
	if imagesDir != "" {
		fileServer := http.StripPrefix("/assets/images/projects/", http.FileServer(http.Dir(imagesDir)))
		r.Get("/assets/images/projects/*", fileServer.ServeHTTP)
	}
}
