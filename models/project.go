package models

// ProjectLinks holds the external URLs attached to a project.
type ProjectLinks struct {
	View string `json:"view"`
	Code string `json:"code"`
}

// Project represents one portfolio project entry. The ID is a runtime
// concept layered on top of the on-disk document; it is stripped before
// the collection is persisted.
type Project struct {
	ID       string       `json:"id,omitempty"`
	Name     string       `json:"name"`
	Desc     string       `json:"desc"`
	Category string       `json:"category"`
	Image    string       `json:"image"`
	Links    ProjectLinks `json:"links"`
}

// Project categories accepted by the API.
const (
	CategoryBasicWeb = "basicweb"
	CategoryMern     = "mern"
	CategoryAndroid  = "android"
	CategoryLamp     = "lamp"
)

// Categories lists every accepted category, in display order.
var Categories = []string{CategoryBasicWeb, CategoryMern, CategoryAndroid, CategoryLamp}

// IsValidCategory reports whether category is one of the accepted values.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
