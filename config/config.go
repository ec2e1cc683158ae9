package config

import (
	"os"
	"strconv"
	"strings"
)

// Configuration keys understood by the backend.
const (
	KeyPort          = "PORT"
	KeyProjectsFile  = "PROJECTS_FILE"
	KeyBackupDir     = "BACKUP_DIR"
	KeyImagesDir     = "IMAGES_DIR"
	KeyJWTSecret     = "JWT_SECRET"
	KeyJWTExpiresHrs = "JWT_EXPIRES_HOURS"
	KeyAdminUsername = "ADMIN_USERNAME"
	KeyAdminPassword = "ADMIN_PASSWORD"
	KeyMaxFileSize   = "MAX_FILE_SIZE"
	KeyOrigins       = "ACCEPTED_ORIGINS"
)

// Default file locations, relative to the working directory. They mirror
// the portfolio site layout: the canonical document lives next to the
// static site, backups in a sibling directory.
const (
	DefaultProjectsFile = "projects/projects.json"
	DefaultBackupDir    = "backups"
	DefaultImagesDir    = "assets/images/projects"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetInt64(config map[string]string, key string, defaultValue int64) int64 {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultValue
	}

	return asInt
}

// GetStrings splits a comma-separated config value, dropping empty
// entries.
func GetStrings(config map[string]string, key string, defaultValue []string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return defaultValue
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
