package models

// CategoryAll is the pseudo-category that disables filtering.
const CategoryAll = "all"

// Colors used outside the registry.
const (
	AllColor      = "#000000"
	FallbackColor = "#ffffff"
)

// Category is a fixed, named grouping for facts with its display color.
type Category struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// categories is the ordered registry. Order drives the filter bar and the
// form's category picker.
var categories = []Category{
	{Name: "technology", Color: "#007ACC"},
	{Name: "science", Color: "#2E7D32"},
	{Name: "finance", Color: "#FF9800"},
	{Name: "society", Color: "#8A2BE2"},
	{Name: "entertainment", Color: "#FF00FF"},
	{Name: "health", Color: "#008080"},
	{Name: "history", Color: "#795548"},
	{Name: "news", Color: "#A49A8D"},
}

// Categories returns a copy of the registry in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns the registry names in display order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// LookupCategory finds a registry entry by name.
func LookupCategory(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// IsKnownCategory reports whether name is in the registry.
func IsKnownCategory(name string) bool {
	_, ok := LookupCategory(name)
	return ok
}

// CategoryColor returns the registry color for name, or FallbackColor for
// names outside the registry.
func CategoryColor(name string) string {
	if name == CategoryAll {
		return AllColor
	}
	if c, ok := LookupCategory(name); ok {
		return c.Color
	}
	return FallbackColor
}
