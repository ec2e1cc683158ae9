package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sheikhshariarnehal/portfolio-backend/errs"
)

// imageExtensions is the canonical resolution order for logical image
// names. Every call site resolves through this list; there is no
// fixed-.png shortcut.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ImageInfo describes one stored image asset.
type ImageInfo struct {
	Filename  string `json:"filename"`  // logical name, no extension
	FullName  string `json:"fullName"`  // on-disk filename
	Extension string `json:"extension"` // including the leading dot
}

// ImageRepo maps logical image names to assets in the shared image
// directory. A dangling reference is not an error here; rendering
// degrades to a placeholder on the consumer side.
type ImageRepo struct {
	dir    string
	logger zerolog.Logger
}

func NewImageRepo(dir string) *ImageRepo {
	logger := log.With().Str("component", "imageRepo").Logger()

	return &ImageRepo{
		dir:    dir,
		logger: logger,
	}
}

// Dir returns the image directory path.
func (r *ImageRepo) Dir() string {
	return r.dir
}

// Resolve returns the on-disk path for a logical image name, trying
// extensions in the canonical preference order. Fails with NotFound if
// no candidate exists.
func (r *ImageRepo) Resolve(logical string) (string, error) {
	for _, ext := range imageExtensions {
		candidate := filepath.Join(r.dir, logical+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errs.NewNotFound("image")
}

// List enumerates the stored image files. A missing image directory
// yields an empty list rather than an error.
func (r *ImageRepo) List() ([]ImageInfo, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ImageInfo{}, nil
		}
		return nil, errs.NewIOFailure("list image directory", err)
	}

	images := make([]ImageInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isImageExtension(ext) {
			continue
		}
		images = append(images, ImageInfo{
			Filename:  strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			FullName:  entry.Name(),
			Extension: filepath.Ext(entry.Name()),
		})
	}

	return images, nil
}

// Delete removes the first stored file whose name without extension
// matches the logical name. Fails with NotFound if no file matches.
func (r *ImageRepo) Delete(logical string) (string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.NewNotFound("image")
		}
		return "", errs.NewIOFailure("list image directory", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())) == logical {
			if err := os.Remove(filepath.Join(r.dir, entry.Name())); err != nil {
				return "", errs.NewIOFailure("delete image file", err)
			}
			r.logger.Info().Str("file", entry.Name()).Msg("image deleted")
			return entry.Name(), nil
		}
	}

	return "", errs.NewNotFound("image")
}

// Save stores an uploaded image under a collision-proof filename
// derived from the original name: non-alphanumeric characters are
// replaced, a time-based suffix is appended and the original extension
// is preserved. Returns the stored file's info, including the logical
// name callers put on project records.
func (r *ImageRepo) Save(originalName string, src io.Reader) (ImageInfo, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !isImageExtension(ext) {
		return ImageInfo{}, errs.NewBadRequestErrorWithField(
			"unsupported image extension", "image",
			fmt.Sprintf("allowed extensions: %s", strings.Join(imageExtensions, ", ")))
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return ImageInfo{}, errs.NewIOFailure("create image directory", err)
	}

	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")

	suffix := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	fullName := fmt.Sprintf("%s_%s%s", base, suffix, ext)

	dst, err := os.Create(filepath.Join(r.dir, fullName))
	if err != nil {
		return ImageInfo{}, errs.NewIOFailure("create image file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return ImageInfo{}, errs.NewIOFailure("write image file", err)
	}

	r.logger.Info().Str("file", fullName).Msg("image stored")

	return ImageInfo{
		Filename:  strings.TrimSuffix(fullName, ext),
		FullName:  fullName,
		Extension: ext,
	}, nil
}

func isImageExtension(ext string) bool {
	for _, allowed := range imageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
