package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sheikhshariarnehal/portfolio-backend/errs"
	"github.com/sheikhshariarnehal/portfolio-backend/models"
	"github.com/sheikhshariarnehal/portfolio-backend/store"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *store.ProjectRepo
}

func newProjectHandler(projectRepo *store.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// listProjects retrieves projects, optionally filtered by category or
// search term, sorted and paginated.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit := 0
		if rawLimit := query.Get("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed < 1 || parsed > 100 {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
					"validation failed", "limit", "limit must be an integer between 1 and 100"))
				return
			}
			limit = parsed
		}

		offset := 0
		if rawOffset := query.Get("offset"); rawOffset != "" {
			parsed, err := strconv.Atoi(rawOffset)
			if err != nil || parsed < 0 {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
					"validation failed", "offset", "offset must be a non-negative integer"))
				return
			}
			offset = parsed
		}

		projects, err := h.projectRepo.LoadAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		switch {
		case query.Get("search") != "":
			projects = store.Search(projects, strings.TrimSpace(query.Get("search")))
		case query.Get("category") != "":
			projects = store.ByCategory(projects, strings.TrimSpace(query.Get("category")))
		}

		if sortKey := query.Get("sort"); sortKey != "" {
			projects = store.SortBy(projects, sortKey)
		}

		if limit > 0 {
			page, total, hasMore := store.Paginate(projects, limit, offset)
			h.responder.WriteJSON(w, map[string]interface{}{
				"success": true,
				"data":    page,
				"pagination": map[string]interface{}{
					"total":   total,
					"limit":   limit,
					"offset":  offset,
					"hasMore": hasMore,
				},
			})
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"data":    projects,
			"total":   len(projects),
		})
	}
}

// getProject retrieves a single project by id or positional index.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := chi.URLParam(r, "id")
		if identifier == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project id"))
			return
		}

		project, err := h.projectRepo.Get(identifier)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, project, "")
	}
}

// createProject validates the request body and appends a new record.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidate, err := h.decodeProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if violations := validateProjectInput(&candidate); len(violations) > 0 {
			h.responder.WriteError(w, errs.NewValidationFailed(violations))
			return
		}

		created, err := h.projectRepo.Create(candidate)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccessStatus(w, http.StatusCreated, created, "Project created successfully")
	}
}

// updateProject replaces a record's fields wholesale, keeping its id.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := chi.URLParam(r, "id")
		if identifier == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project id"))
			return
		}

		candidate, err := h.decodeProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if violations := validateProjectInput(&candidate); len(violations) > 0 {
			h.responder.WriteError(w, errs.NewValidationFailed(violations))
			return
		}

		updated, err := h.projectRepo.Update(identifier, candidate)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, updated, "Project updated successfully")
	}
}

// deleteProject removes a record and returns it for confirmation.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := chi.URLParam(r, "id")
		if identifier == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing project id"))
			return
		}

		deleted, err := h.projectRepo.Delete(identifier)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, deleted, "Project deleted successfully")
	}
}

// getCategories returns the distinct categories in use, sorted.
func (h projectHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.LoadAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, store.CategoriesOf(projects), "")
	}
}

func (h projectHandler) decodeProject(r *http.Request) (models.Project, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return models.Project{}, errs.NewBadRequestError("failed to read request body")
	}

	var project models.Project
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
		return models.Project{}, errs.NewBadRequestError("malformed request body")
	}

	return project, nil
}

// validateProjectInput enforces the API's request-shape rules, which
// are stricter than the store's structural checks: length bounds,
// category enum membership and URL well-formedness with an explicit
// scheme. Fields are trimmed in place before checking.
func validateProjectInput(p *models.Project) []string {
	p.Name = strings.TrimSpace(p.Name)
	p.Desc = strings.TrimSpace(p.Desc)
	p.Category = strings.TrimSpace(p.Category)
	p.Image = strings.TrimSpace(p.Image)
	p.Links.View = strings.TrimSpace(p.Links.View)
	p.Links.Code = strings.TrimSpace(p.Links.Code)

	var violations []string

	if p.Name == "" || len(p.Name) > 200 {
		violations = append(violations, "Project name must be between 1 and 200 characters")
	}
	if len(p.Desc) < 10 || len(p.Desc) > 1000 {
		violations = append(violations, "Project description must be between 10 and 1000 characters")
	}
	if !models.IsValidCategory(p.Category) {
		violations = append(violations, fmt.Sprintf("Category must be one of: %s", strings.Join(models.Categories, ", ")))
	}
	if p.Image == "" {
		violations = append(violations, "Project image is required")
	}
	if !isAbsoluteURL(p.Links.View) {
		violations = append(violations, "View link must be a valid URL with an explicit scheme")
	}
	if !isAbsoluteURL(p.Links.Code) {
		violations = append(violations, "Code link must be a valid URL with an explicit scheme")
	}

	return violations
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
