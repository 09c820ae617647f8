package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// Storage slot keys.
const (
	ProfilesKey        = "snapsense-profiles"
	SelectedProfileKey = "snapsense-selected-profile"
)

// LoadStatus says what LoadProfiles found in the profiles slot.
type LoadStatus int

const (
	// LoadStatusLoaded means a non-empty collection was decoded.
	LoadStatusLoaded LoadStatus = iota
	// LoadStatusEmpty means the slot is absent or holds an empty array.
	LoadStatusEmpty
	// LoadStatusCorrupt means the slot could not be read or decoded.
	LoadStatusCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadStatusLoaded:
		return "loaded"
	case LoadStatusEmpty:
		return "empty"
	default:
		return "corrupt"
	}
}

// ProfilesLoad is the outcome of reading the profiles slot. Err is set only
// for LoadStatusCorrupt.
type ProfilesLoad struct {
	Status   LoadStatus
	Profiles []domain.Profile
	Err      error
}

// UseSeed reports whether the caller should fall back to the demo profiles.
func (l ProfilesLoad) UseSeed() bool {
	return l.Status != LoadStatusLoaded
}

// LoadProfiles reads the persisted profile collection. It never fails: an
// unreadable or malformed slot is reported as LoadStatusCorrupt.
func (s *Store) LoadProfiles(ctx context.Context) ProfilesLoad {
	if err := ctx.Err(); err != nil {
		return ProfilesLoad{Status: LoadStatusCorrupt, Err: err}
	}

	raw, err := s.getRaw(ProfilesKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ProfilesLoad{Status: LoadStatusEmpty}
	}
	if err != nil {
		return ProfilesLoad{Status: LoadStatusCorrupt, Err: fmt.Errorf("read %s: %w", ProfilesKey, err)}
	}

	var profiles []domain.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return ProfilesLoad{Status: LoadStatusCorrupt, Err: fmt.Errorf("decode %s: %w", ProfilesKey, err)}
	}
	// A JSON null decodes to a nil slice without error.
	if len(profiles) == 0 {
		return ProfilesLoad{Status: LoadStatusEmpty}
	}
	return ProfilesLoad{Status: LoadStatusLoaded, Profiles: profiles}
}

// SaveProfiles replaces the persisted collection.
func (s *Store) SaveProfiles(ctx context.Context, profiles []domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	if err := s.set(ProfilesKey, profiles); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	return nil
}

// LoadSelectedProfileID returns the persisted selection, or "" when none is stored.
func (s *Store) LoadSelectedProfileID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := s.getRaw(SelectedProfileKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", SelectedProfileKey, err)
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("decode %s: %w", SelectedProfileKey, err)
	}
	return id, nil
}

// SaveSelectedProfileID persists the selection. An empty id clears the slot.
func (s *Store) SaveSelectedProfileID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		if err := s.delete(SelectedProfileKey); err != nil {
			return fmt.Errorf("clear selected profile: %w", err)
		}
		return nil
	}
	if err := s.set(SelectedProfileKey, id); err != nil {
		return fmt.Errorf("save selected profile: %w", err)
	}
	return nil
}
