package store

// Store bundles the repositories backed by the portfolio's on-disk
// layout: the canonical projects document, its backup directory and the
// shared image directory.
type Store struct {
	projectRepo *ProjectRepo
	imageRepo   *ImageRepo
}

// New initializes a new Store with each repository pointed at its part
// of the filesystem layout.
func New(documentPath, backupDir, imagesDir string) Store {
	return Store{
		projectRepo: NewProjectRepo(documentPath, backupDir),
		imageRepo:   NewImageRepo(imagesDir),
	}
}

// Accessor methods for each repository

func (s Store) ProjectRepo() *ProjectRepo {
	return s.projectRepo
}

func (s Store) ImageRepo() *ImageRepo {
	return s.imageRepo
}
