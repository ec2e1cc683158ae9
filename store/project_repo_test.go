package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhshariarnehal/portfolio-backend/errs"
	"github.com/sheikhshariarnehal/portfolio-backend/models"
)

func validProject(name string) models.Project {
	return models.Project{
		Name:     name,
		Desc:     "0123456789",
		Category: models.CategoryMern,
		Image:    "t",
		Links: models.ProjectLinks{
			View: "https://a.com",
			Code: "https://b.com",
		},
	}
}

// newTestRepo seeds a repo in a temp directory with the given document
// content and returns it alongside its backup directory.
func newTestRepo(t *testing.T, document string) (*ProjectRepo, string) {
	t.Helper()

	dir := t.TempDir()
	documentPath := filepath.Join(dir, "projects.json")
	backupDir := filepath.Join(dir, "backups")

	require.NoError(t, os.WriteFile(documentPath, []byte(document), 0o644))

	return NewProjectRepo(documentPath, backupDir), backupDir
}

func backupFiles(t *testing.T, backupDir string) []string {
	t.Helper()

	entries, err := os.ReadDir(backupDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLoadAll(t *testing.T) {
	t.Run("assigns positional ids to legacy records", func(t *testing.T) {
		repo, _ := newTestRepo(t, `[
			{"name":"First","desc":"first desc","category":"mern","image":"a","links":{"view":"https://a.com","code":"https://b.com"}},
			{"name":"Second","desc":"second desc","category":"lamp","image":"b","links":{"view":"https://c.com","code":"https://d.com"}}
		]`)

		projects, err := repo.LoadAll()
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "project_1", projects[0].ID)
		assert.Equal(t, "project_2", projects[1].ID)
	})

	t.Run("missing document fails with NotFound", func(t *testing.T) {
		repo := NewProjectRepo(filepath.Join(t.TempDir(), "absent.json"), t.TempDir())

		_, err := repo.LoadAll()
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("invalid JSON fails with MalformedStore", func(t *testing.T) {
		repo, _ := newTestRepo(t, `{not json`)

		_, err := repo.LoadAll()
		require.Error(t, err)
		assert.True(t, errs.IsMalformedStore(err))
	})

	t.Run("non-array document fails with MalformedStore", func(t *testing.T) {
		repo, _ := newTestRepo(t, `{"name":"not an array"}`)

		_, err := repo.LoadAll()
		require.Error(t, err)
		assert.True(t, errs.IsMalformedStore(err))
	})

	t.Run("positional ids are not persisted", func(t *testing.T) {
		repo, _ := newTestRepo(t, `[{"name":"First","desc":"first desc","category":"mern","image":"a","links":{"view":"https://a.com","code":"https://b.com"}}]`)

		_, err := repo.LoadAll()
		require.NoError(t, err)

		raw, err := os.ReadFile(repo.DocumentPath())
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"id"`)
	})
}

func TestGet(t *testing.T) {
	repo, _ := newTestRepo(t, `[
		{"name":"First","desc":"first desc","category":"mern","image":"a","links":{"view":"https://a.com","code":"https://b.com"}},
		{"name":"Second","desc":"second desc","category":"lamp","image":"b","links":{"view":"https://c.com","code":"https://d.com"}}
	]`)

	t.Run("by id", func(t *testing.T) {
		project, err := repo.Get("project_2")
		require.NoError(t, err)
		assert.Equal(t, "Second", project.Name)
	})

	t.Run("by zero-based positional index", func(t *testing.T) {
		project, err := repo.Get("0")
		require.NoError(t, err)
		assert.Equal(t, "First", project.Name)
	})

	t.Run("unresolvable identifier fails with NotFound", func(t *testing.T) {
		_, err := repo.Get("no-such-id")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))

		_, err = repo.Get("99")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestValidate(t *testing.T) {
	repo, _ := newTestRepo(t, `[]`)

	t.Run("valid candidate has no violations", func(t *testing.T) {
		assert.Empty(t, repo.Validate(validProject("Test")))
	})

	t.Run("collects every violation", func(t *testing.T) {
		violations := repo.Validate(models.Project{})
		assert.Len(t, violations, 6)
	})

	t.Run("whitespace-only fields are rejected", func(t *testing.T) {
		candidate := validProject("Test")
		candidate.Desc = "   "
		violations := repo.Validate(candidate)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "description")
	})
}

func TestCreate(t *testing.T) {
	t.Run("empty store scenario", func(t *testing.T) {
		repo, backupDir := newTestRepo(t, `[]`)

		created, err := repo.Create(validProject("Test"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		projects, err := repo.LoadAll()
		require.NoError(t, err)
		require.Len(t, projects, 1)

		// Exactly one backup containing the prior (empty) document
		backups := backupFiles(t, backupDir)
		require.Len(t, backups, 1)
		data, err := os.ReadFile(filepath.Join(backupDir, backups[0]))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("create then get returns candidate plus id", func(t *testing.T) {
		repo, _ := newTestRepo(t, `[]`)

		candidate := validProject("Round Trip")
		created, err := repo.Create(candidate)
		require.NoError(t, err)

		got, err := repo.Get(created.ID)
		require.NoError(t, err)

		candidate.ID = created.ID
		assert.Equal(t, candidate, got)
	})

	t.Run("consecutive creates get distinct ids", func(t *testing.T) {
		repo, _ := newTestRepo(t, `[]`)

		first, err := repo.Create(validProject("One"))
		require.NoError(t, err)
		second, err := repo.Create(validProject("Two"))
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("invalid candidate fails with ValidationFailed and no backup", func(t *testing.T) {
		repo, backupDir := newTestRepo(t, `[]`)

		_, err := repo.Create(models.Project{Name: "only a name"})
		require.Error(t, err)
		assert.True(t, errs.IsValidationFailed(err))
		assert.Empty(t, backupFiles(t, backupDir))
	})

	t.Run("id is stripped from the persisted document", func(t *testing.T) {
		repo, _ := newTestRepo(t, `[]`)

		_, err := repo.Create(validProject("Test"))
		require.NoError(t, err)

		raw, err := os.ReadFile(repo.DocumentPath())
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"id"`)
	})
}

func TestUpdate(t *testing.T) {
	seed := `[{"name":"Original","desc":"original desc","category":"mern","image":"orig","links":{"view":"https://a.com","code":"https://b.com"}}]`

	t.Run("preserves id and replaces every other field", func(t *testing.T) {
		repo, _ := newTestRepo(t, seed)

		patch := validProject("Replaced")
		patch.Category = models.CategoryAndroid

		updated, err := repo.Update("project_1", patch)
		require.NoError(t, err)
		assert.Equal(t, "project_1", updated.ID)
		assert.Equal(t, "Replaced", updated.Name)
		assert.Equal(t, models.CategoryAndroid, updated.Category)

		patch.ID = "project_1"
		assert.Equal(t, patch, updated)
	})

	t.Run("non-existent identifier fails with NotFound, store unchanged, no backup", func(t *testing.T) {
		repo, backupDir := newTestRepo(t, seed)

		before, err := os.ReadFile(repo.DocumentPath())
		require.NoError(t, err)

		_, err = repo.Update("non-existent-id", validProject("Patch"))
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))

		after, err := os.ReadFile(repo.DocumentPath())
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
		assert.Empty(t, backupFiles(t, backupDir))
	})

	t.Run("invalid candidate fails with ValidationFailed", func(t *testing.T) {
		repo, _ := newTestRepo(t, seed)

		_, err := repo.Update("project_1", models.Project{})
		require.Error(t, err)
		assert.True(t, errs.IsValidationFailed(err))
	})
}

func TestDelete(t *testing.T) {
	seed := `[
		{"name":"First","desc":"first desc","category":"mern","image":"a","links":{"view":"https://a.com","code":"https://b.com"}},
		{"name":"Second","desc":"second desc","category":"lamp","image":"b","links":{"view":"https://c.com","code":"https://d.com"}}
	]`

	t.Run("removes exactly one record and returns it", func(t *testing.T) {
		repo, _ := newTestRepo(t, seed)

		before, err := repo.Get("project_1")
		require.NoError(t, err)

		deleted, err := repo.Delete("project_1")
		require.NoError(t, err)
		assert.Equal(t, before, deleted)

		projects, err := repo.LoadAll()
		require.NoError(t, err)
		assert.Len(t, projects, 1)
		assert.Equal(t, "Second", projects[0].Name)
	})

	t.Run("deleting an absent record fails with NotFound", func(t *testing.T) {
		repo, _ := newTestRepo(t, seed)

		_, err := repo.Delete("project_1")
		require.NoError(t, err)

		// Deleting again is NotFound, not a silent no-op. The survivor
		// shifted to position 0, so its positional fallback changed too;
		// lookup by the stale id must fail.
		_, err = repo.Delete("project_2")
		require.Error(t, err)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestSaveAllRoundTrip(t *testing.T) {
	seed := `[
		{"name":"First","desc":"first desc","category":"mern","image":"a","links":{"view":"https://a.com","code":"https://b.com"}},
		{"name":"Second","desc":"second desc","category":"lamp","image":"b","links":{"view":"https://c.com","code":"https://d.com"}}
	]`
	repo, _ := newTestRepo(t, seed)

	projects, err := repo.LoadAll()
	require.NoError(t, err)
	require.NoError(t, repo.SaveAll(projects))

	raw, err := os.ReadFile(repo.DocumentPath())
	require.NoError(t, err)
	assert.JSONEq(t, seed, string(raw))
}

func TestBackupPerMutation(t *testing.T) {
	repo, backupDir := newTestRepo(t, `[]`)

	created, err := repo.Create(validProject("One"))
	require.NoError(t, err)
	require.Len(t, backupFiles(t, backupDir), 1)

	stateAfterCreate, err := os.ReadFile(repo.DocumentPath())
	require.NoError(t, err)

	_, err = repo.Update(created.ID, validProject("One Updated"))
	require.NoError(t, err)
	backups := backupFiles(t, backupDir)
	require.Len(t, backups, 2)

	_, err = repo.Delete(created.ID)
	require.NoError(t, err)
	require.Len(t, backupFiles(t, backupDir), 3)

	// Each backup equals the document state immediately prior to its
	// mutation: the update's snapshot matches the post-create state.
	var match bool
	for _, name := range backupFiles(t, backupDir) {
		data, err := os.ReadFile(filepath.Join(backupDir, name))
		require.NoError(t, err)
		if string(data) == string(stateAfterCreate) {
			match = true
		}
	}
	assert.True(t, match, "no backup matches the pre-update document state")
}

func TestPersistedDocumentShape(t *testing.T) {
	repo, _ := newTestRepo(t, `[]`)

	_, err := repo.Create(validProject("Shape"))
	require.NoError(t, err)

	raw, err := os.ReadFile(repo.DocumentPath())
	require.NoError(t, err)

	var generic []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic, 1)

	for _, key := range []string{"name", "desc", "category", "image", "links"} {
		assert.Contains(t, generic[0], key)
	}
	assert.NotContains(t, generic[0], "id")
}
