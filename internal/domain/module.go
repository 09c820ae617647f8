package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LearningModule is one of the toy's activity modules.
type LearningModule struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Modules lists the toy's modules in display order. ID is the identifier the
// device reports in activity events; Slug is what the profile form submits.
var Modules = []LearningModule{
	{ID: "first-aid", Slug: "first-aid", Label: "First Aid Sequencing", Color: "#3b82f6"},
	{ID: "color-mix", Slug: "color-mixing", Label: "Color Mixing", Color: "#f59e0b"},
	{ID: "story-order", Slug: "story-ordering", Label: "Story Ordering", Color: "#a855f7"},
}

// DefaultFavoriteModule is used when a new profile names none.
const DefaultFavoriteModule = "Color Mixing"

// ModuleLabel resolves a module id, slug or label to its display label.
// Unknown values are title-cased so free text still reads well.
func ModuleLabel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultFavoriteModule
	}
	for _, m := range Modules {
		if strings.EqualFold(v, m.ID) || strings.EqualFold(v, m.Slug) || strings.EqualFold(v, m.Label) {
			return m.Label
		}
	}
	return cases.Title(language.English).String(strings.ReplaceAll(v, "-", " "))
}

// ModuleByID returns the module with the given device id.
func ModuleByID(id string) (LearningModule, bool) {
	for _, m := range Modules {
		if m.ID == id {
			return m, true
		}
	}
	return LearningModule{}, false
}
