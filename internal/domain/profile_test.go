package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProfile_Normalize(t *testing.T) {
	n := NewProfile{Name: "  Mika ", Age: 6, FavoriteModule: "story-ordering"}.Normalize()

	assert.Equal(t, "Mika", n.Name)
	assert.Equal(t, DefaultAvatarColor, n.AvatarColor)
	assert.Equal(t, DefaultAvatarEmoji, n.AvatarEmoji)
	assert.Equal(t, "Story Ordering", n.FavoriteModule)
}

func TestNewProfile_Build(t *testing.T) {
	p := NewProfile{Name: "Mika", Age: 6, AvatarEmoji: "🐼", AvatarColor: "#000000"}.Normalize().Build("prf-1")

	assert.Equal(t, Profile{
		ID: "prf-1", Name: "Mika", Age: 6,
		AvatarColor: "#000000", AvatarEmoji: "🐼",
		Level: 1, Exp: 0, Streak: 0,
		FavoriteModule: DefaultFavoriteModule,
	}, p)
}

func TestDemoProfiles(t *testing.T) {
	seed := DemoProfiles()

	assert.Len(t, seed, 2)
	assert.Equal(t, "aria", seed[0].ID)
	assert.Equal(t, "dev", seed[1].ID)

	// Each call returns a fresh slice.
	seed[0].Name = "changed"
	assert.Equal(t, "Aria", DemoProfiles()[0].Name)
}

func TestModuleLabel(t *testing.T) {
	tests := map[string]string{
		"":                     "Color Mixing",
		"color-mixing":         "Color Mixing",
		"color-mix":            "Color Mixing",
		"FIRST-AID":            "First Aid Sequencing",
		"Story Ordering":       "Story Ordering",
		"shape-sorting":        "Shape Sorting",
		"First Aid Sequencing": "First Aid Sequencing",
	}
	for in, want := range tests {
		assert.Equal(t, want, ModuleLabel(in), in)
	}
}

func TestModuleByID(t *testing.T) {
	m, ok := ModuleByID("story-order")
	assert.True(t, ok)
	assert.Equal(t, "#a855f7", m.Color)

	_, ok = ModuleByID("story-ordering")
	assert.False(t, ok)
}
