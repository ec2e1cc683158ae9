package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sheikhshariarnehal/portfolio-backend/errs"
	"github.com/sheikhshariarnehal/portfolio-backend/models"
)

// ProjectRepo is the single source of truth for the project collection,
// persisted as one JSON array. Every mutation snapshots the prior
// document into the backup directory before overwriting it, and all
// mutations are serialized through a writer mutex so two concurrent
// requests cannot interleave their read-modify-write cycles.
type ProjectRepo struct {
	documentPath string
	backupDir    string
	logger       zerolog.Logger

	mu sync.Mutex
}

func NewProjectRepo(documentPath, backupDir string) *ProjectRepo {
	logger := log.With().Str("component", "projectRepo").Logger()

	return &ProjectRepo{
		documentPath: documentPath,
		backupDir:    backupDir,
		logger:       logger,
	}
}

// DocumentPath returns the location of the canonical projects document.
func (r *ProjectRepo) DocumentPath() string {
	return r.documentPath
}

// LoadAll reads and parses the canonical document. Records that carry
// no persisted id get a positional one (`project_<index+1>`) for the
// duration of this read; positional ids are never written back and are
// unstable across reorderings.
func (r *ProjectRepo) LoadAll() ([]models.Project, error) {
	data, err := os.ReadFile(r.documentPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NewNotFound("projects document")
		}
		return nil, errs.NewIOFailure("read projects document", err)
	}

	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, errs.NewMalformedStore(err)
	}

	for i := range projects {
		if projects[i].ID == "" {
			projects[i].ID = fmt.Sprintf("project_%d", i+1)
		}
	}

	return projects, nil
}

// Get resolves identifier first by exact id match, falling back to
// treating it as a zero-based positional index into the collection.
func (r *ProjectRepo) Get(identifier string) (models.Project, error) {
	projects, err := r.LoadAll()
	if err != nil {
		return models.Project{}, err
	}

	idx := findProject(projects, identifier)
	if idx < 0 {
		return models.Project{}, errs.NewNotFound("project")
	}

	return projects[idx], nil
}

// Validate runs the store's structural checks on a candidate record and
// returns the list of violations, empty if valid. Length bounds, the
// category enum and URL well-formedness are enforced by the API layer,
// not here.
func (r *ProjectRepo) Validate(candidate models.Project) []string {
	var violations []string

	if strings.TrimSpace(candidate.Name) == "" {
		violations = append(violations, "project name is required and must be a non-empty string")
	}
	if strings.TrimSpace(candidate.Desc) == "" {
		violations = append(violations, "project description is required and must be a non-empty string")
	}
	if strings.TrimSpace(candidate.Category) == "" {
		violations = append(violations, "project category is required and must be a non-empty string")
	}
	if strings.TrimSpace(candidate.Image) == "" {
		violations = append(violations, "project image is required and must be a non-empty string")
	}
	if strings.TrimSpace(candidate.Links.View) == "" {
		violations = append(violations, "project view link is required and must be a non-empty string")
	}
	if strings.TrimSpace(candidate.Links.Code) == "" {
		violations = append(violations, "project code link is required and must be a non-empty string")
	}

	return violations
}

// Create validates the candidate, assigns it a new unique id, appends
// it to the collection and persists. The stored record is returned with
// its id set.
func (r *ProjectRepo) Create(candidate models.Project) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if violations := r.Validate(candidate); len(violations) > 0 {
		return models.Project{}, errs.NewValidationFailed(violations)
	}

	projects, err := r.LoadAll()
	if err != nil {
		return models.Project{}, err
	}

	candidate.ID = nextProjectID(projects)
	projects = append(projects, candidate)

	if err := r.save(projects); err != nil {
		return models.Project{}, err
	}

	return candidate, nil
}

// Update resolves identifier, validates the candidate and replaces the
// located record's fields wholesale while preserving its original id.
func (r *ProjectRepo) Update(identifier string, candidate models.Project) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.LoadAll()
	if err != nil {
		return models.Project{}, err
	}

	idx := findProject(projects, identifier)
	if idx < 0 {
		return models.Project{}, errs.NewNotFound("project")
	}

	if violations := r.Validate(candidate); len(violations) > 0 {
		return models.Project{}, errs.NewValidationFailed(violations)
	}

	candidate.ID = projects[idx].ID
	projects[idx] = candidate

	if err := r.save(projects); err != nil {
		return models.Project{}, err
	}

	return candidate, nil
}

// Delete resolves identifier, removes the record and persists. The
// removed record is returned so callers can confirm what was deleted.
func (r *ProjectRepo) Delete(identifier string) (models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.LoadAll()
	if err != nil {
		return models.Project{}, err
	}

	idx := findProject(projects, identifier)
	if idx < 0 {
		return models.Project{}, errs.NewNotFound("project")
	}

	deleted := projects[idx]
	projects = append(projects[:idx], projects[idx+1:]...)

	if err := r.save(projects); err != nil {
		return models.Project{}, err
	}

	return deleted, nil
}

// SaveAll persists the given collection, running the full write
// protocol (backup, then overwrite).
func (r *ProjectRepo) SaveAll(projects []models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.save(projects)
}

// save runs the write protocol: snapshot the current document into the
// backup directory, then overwrite the canonical document with the full
// serialized collection, ids stripped. Backup failure aborts the write
// before any mutation becomes visible.
func (r *ProjectRepo) save(projects []models.Project) error {
	if err := r.createBackup(); err != nil {
		return err
	}

	toSave := make([]models.Project, len(projects))
	for i, p := range projects {
		p.ID = ""
		toSave[i] = p
	}

	data, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return errs.NewIOFailure("serialize projects", err)
	}

	if err := os.WriteFile(r.documentPath, data, 0o644); err != nil {
		return errs.NewIOFailure("write projects document", err)
	}

	r.logger.Debug().Int("count", len(projects)).Msg("projects saved")
	return nil
}

// createBackup copies the current document bytes into a new timestamped
// file under the backup directory, creating the directory if absent.
func (r *ProjectRepo) createBackup() error {
	if err := os.MkdirAll(r.backupDir, 0o755); err != nil {
		return errs.NewIOFailure("create backup directory", err)
	}

	data, err := os.ReadFile(r.documentPath)
	if err != nil {
		return errs.NewIOFailure("read projects document for backup", err)
	}

	backupName := fmt.Sprintf("projects-backup-%d.json", time.Now().UnixNano())
	backupPath := filepath.Join(r.backupDir, backupName)

	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return errs.NewIOFailure("write backup file", err)
	}

	r.logger.Debug().Str("backup", backupName).Msg("backup created")
	return nil
}

// findProject locates a record by exact id match, falling back to a
// zero-based positional index. Returns -1 when neither resolves.
func findProject(projects []models.Project, identifier string) int {
	for i, p := range projects {
		if p.ID == identifier {
			return i
		}
	}

	if idx, err := strconv.Atoi(identifier); err == nil && idx >= 0 && idx < len(projects) {
		return idx
	}

	return -1
}

// nextProjectID derives a creation-time based id, probing forward until
// it is distinct from every id in the live collection.
func nextProjectID(projects []models.Project) string {
	existing := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		existing[p.ID] = struct{}{}
	}

	base := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("project_%d", base)
		if _, taken := existing[id]; !taken {
			return id
		}
		base++
	}
}
