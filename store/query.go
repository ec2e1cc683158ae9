package store

import (
	"sort"
	"strings"

	"github.com/sheikhshariarnehal/portfolio-backend/models"
)

// Read-only views over an in-memory project snapshot. None of these
// touch the store; they are pure transforms so a handler can chain
// filter, sort and paginate over one consistent load.

// Sort keys understood by SortBy.
const (
	SortByName     = "name"
	SortByNameDesc = "name-desc"
	SortByCategory = "category"
)

// ByCategory returns the projects whose category matches exactly, in
// original relative order.
func ByCategory(projects []models.Project, category string) []models.Project {
	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Search returns the projects whose name or description contains term,
// case-insensitively.
func Search(projects []models.Project, term string) []models.Project {
	needle := strings.ToLower(term)

	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Desc), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortBy returns a sorted copy of projects. Sorting is stable: equal
// keys keep their relative input order. An unknown key returns the
// input order unchanged.
func SortBy(projects []models.Project, key string) []models.Project {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)

	switch key {
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case SortByNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name > sorted[j].Name
		})
	case SortByCategory:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Category != sorted[j].Category {
				return sorted[i].Category < sorted[j].Category
			}
			return sorted[i].Name < sorted[j].Name
		})
	}

	return sorted
}

// Paginate slices [offset, offset+limit) out of projects and reports
// the pre-slice total and whether more records follow the page. A limit
// of zero or less means no pagination: the full set comes back.
func Paginate(projects []models.Project, limit, offset int) (page []models.Project, total int, hasMore bool) {
	total = len(projects)

	if limit <= 0 {
		return projects, total, false
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Project{}, total, false
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return projects[offset:end], total, offset+limit < total
}

// CategoriesOf returns the distinct categories present in projects,
// sorted alphabetically.
func CategoriesOf(projects []models.Project) []string {
	seen := make(map[string]struct{}, len(projects))
	categories := make([]string, 0, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}

	sort.Strings(categories)
	return categories
}
