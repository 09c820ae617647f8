package domain

import "strings"

// Profile is a child's profile as shown on the dashboard. The JSON names
// match the persisted collection format.
type Profile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	AvatarColor    string `json:"avatarColor"`
	AvatarEmoji    string `json:"avatarEmoji"`
	Level          int    `json:"level"`
	Exp            int    `json:"exp"`
	Streak         int    `json:"streak"`
	FavoriteModule string `json:"favoriteModule"`
}

// NewProfile carries the attributes a parent supplies when adding a child.
// Age bounds are only enforced here; stored profiles are not re-validated.
type NewProfile struct {
	Name           string `json:"name" validate:"notblank,max=40"`
	Age            int    `json:"age" validate:"gte=3,lte=8"`
	AvatarColor    string `json:"avatarColor,omitempty" validate:"max=32"`
	AvatarEmoji    string `json:"avatarEmoji,omitempty" validate:"max=16"`
	FavoriteModule string `json:"favoriteModule,omitempty" validate:"max=40"`
}

// Defaults applied to optional NewProfile fields.
const (
	DefaultAvatarColor = "#3b82f6"
	DefaultAvatarEmoji = "🌈"
)

// Normalize trims text fields and fills in avatar and module defaults.
func (n NewProfile) Normalize() NewProfile {
	n.Name = strings.TrimSpace(n.Name)
	n.AvatarColor = strings.TrimSpace(n.AvatarColor)
	if n.AvatarColor == "" {
		n.AvatarColor = DefaultAvatarColor
	}
	n.AvatarEmoji = strings.TrimSpace(n.AvatarEmoji)
	if n.AvatarEmoji == "" {
		n.AvatarEmoji = DefaultAvatarEmoji
	}
	n.FavoriteModule = ModuleLabel(n.FavoriteModule)
	return n
}

// Build creates a fresh profile at level 1 with no EXP and no streak.
func (n NewProfile) Build(id string) Profile {
	return Profile{
		ID:             id,
		Name:           n.Name,
		Age:            n.Age,
		AvatarColor:    n.AvatarColor,
		AvatarEmoji:    n.AvatarEmoji,
		Level:          1,
		Exp:            0,
		Streak:         0,
		FavoriteModule: n.FavoriteModule,
	}
}

// DemoProfiles returns the two seed profiles used when storage holds nothing usable.
func DemoProfiles() []Profile {
	return []Profile{
		{
			ID: "aria", Name: "Aria", Age: 7,
			AvatarColor: "#3b82f6", AvatarEmoji: "🎈",
			Level: 8, Exp: 1780, Streak: 9,
			FavoriteModule: "Color Mixing",
		},
		{
			ID: "dev", Name: "Dev", Age: 5,
			AvatarColor: "#10b981", AvatarEmoji: "🚀",
			Level: 5, Exp: 940, Streak: 4,
			FavoriteModule: "First Aid Sequencing",
		},
	}
}
