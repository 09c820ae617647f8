package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/snapsense/snapsense-server/internal/domain"
	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
	"github.com/snapsense/snapsense-server/internal/id"
	"github.com/snapsense/snapsense-server/internal/store"
	"github.com/snapsense/snapsense-server/internal/validation"
)

// ProfileRepository persists the profile collection and the selection.
type ProfileRepository interface {
	LoadProfiles(ctx context.Context) store.ProfilesLoad
	SaveProfiles(ctx context.Context, profiles []domain.Profile) error
	LoadSelectedProfileID(ctx context.Context) (string, error)
	SaveSelectedProfileID(ctx context.Context, id string) error
}

// ActivityPurger drops journal entries of a removed profile.
type ActivityPurger interface {
	DeleteProfileActivity(ctx context.Context, profileID string) (int64, error)
}

// SelectionListener is told about every change of the selected profile.
// An empty id means the selection was cleared.
type SelectionListener interface {
	SelectionChanged(profileID string)
}

// SelectionListenerFunc adapts a function to SelectionListener.
type SelectionListenerFunc func(profileID string)

// SelectionChanged implements SelectionListener.
func (f SelectionListenerFunc) SelectionChanged(profileID string) { f(profileID) }

// ProfileService owns the children's profiles and which one is selected.
// Every mutation is written to the repository before memory changes; a
// failed write leaves both untouched.
type ProfileService struct {
	repo      ProfileRepository
	validator *validation.Validator
	logger    *slog.Logger

	// changeMu orders selection changes together with their notifications,
	// so listeners see changes in the order they were made. Taken before mu.
	changeMu sync.Mutex

	mu         sync.RWMutex
	profiles   []domain.Profile
	selectedID string

	purger    ActivityPurger
	listeners []SelectionListener
}

// NewProfileService creates a new profile service. Call Initialize before use.
func NewProfileService(repo ProfileRepository, validator *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

// SetActivityPurger wires journal cleanup on Remove.
func (s *ProfileService) SetActivityPurger(p ActivityPurger) {
	s.purger = p
}

// OnSelectionChange registers a listener. Not safe to call concurrently
// with mutations; wire listeners at startup. Listeners run while the
// change is held and must not call back into the service's mutators.
func (s *ProfileService) OnSelectionChange(l SelectionListener) {
	s.listeners = append(s.listeners, l)
}

// Initialize loads the persisted collection and selection. An empty or
// unreadable collection is replaced by the demo profiles and written back.
// A selection pointing at a missing profile is cleared. Failures are
// logged, never returned.
func (s *ProfileService) Initialize(ctx context.Context) {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	load := s.repo.LoadProfiles(ctx)
	profiles := load.Profiles

	if load.UseSeed() {
		if load.Status == store.LoadStatusCorrupt {
			s.logger.Warn("stored profiles unreadable, using demo profiles", "error", load.Err)
		} else {
			s.logger.Info("no stored profiles, using demo profiles")
		}
		profiles = domain.DemoProfiles()
		if err := s.repo.SaveProfiles(ctx, profiles); err != nil {
			s.logger.Error("failed to persist demo profiles", "error", err)
		}
	}

	selectedID, err := s.repo.LoadSelectedProfileID(ctx)
	stale := err != nil
	if err != nil {
		s.logger.Warn("stored selection unreadable, clearing", "error", err)
		selectedID = ""
	}
	if selectedID != "" && indexOf(profiles, selectedID) < 0 {
		s.logger.Info("selected profile no longer exists, clearing selection", "profile_id", selectedID)
		selectedID = ""
		stale = true
	}
	if stale {
		if err := s.repo.SaveSelectedProfileID(ctx, ""); err != nil {
			s.logger.Error("failed to clear selection", "error", err)
		}
	}

	s.mu.Lock()
	s.profiles = profiles
	s.selectedID = selectedID
	s.mu.Unlock()

	s.logger.Info("profiles loaded",
		"count", len(profiles),
		"status", load.Status.String(),
		"selected", selectedID)

	if selectedID != "" {
		s.notify(selectedID)
	}
}

// Profiles returns a copy of the collection in insertion order.
func (s *ProfileService) Profiles() []domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.profiles)
}

// Get returns one profile.
func (s *ProfileService) Get(profileID string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.profiles, profileID)
	if i < 0 {
		return domain.Profile{}, domainerrors.NotFoundf("profile %q not found", profileID)
	}
	return s.profiles[i], nil
}

// Exists reports whether profileID is in the collection.
func (s *ProfileService) Exists(profileID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.profiles, profileID) >= 0
}

// SelectedID returns the selected profile id, or "".
func (s *ProfileService) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// Selected returns the selected profile. ok is false when nothing is
// selected or the id has no profile.
func (s *ProfileService) Selected() (domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.profiles, s.selectedID)
	if i < 0 {
		return domain.Profile{}, false
	}
	return s.profiles[i], true
}

// Select makes profileID the active profile; "" clears the selection.
// Existence is not checked here.
func (s *ProfileService) Select(ctx context.Context, profileID string) error {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()
	changed, err := s.selectLocked(ctx, profileID)
	s.mu.Unlock()
	if err != nil || !changed {
		return err
	}
	s.selected(profileID)
	return nil
}

// SelectExisting is Select for an id that must name a stored profile. The
// check and the change happen under one lock, so a concurrent Remove cannot
// leave the selection dangling.
func (s *ProfileService) SelectExisting(ctx context.Context, profileID string) error {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()
	if indexOf(s.profiles, profileID) < 0 {
		s.mu.Unlock()
		return domainerrors.NotFoundf("profile %q not found", profileID)
	}
	changed, err := s.selectLocked(ctx, profileID)
	s.mu.Unlock()
	if err != nil || !changed {
		return err
	}
	s.selected(profileID)
	return nil
}

func (s *ProfileService) selectLocked(ctx context.Context, profileID string) (changed bool, err error) {
	if err := s.repo.SaveSelectedProfileID(ctx, profileID); err != nil {
		return false, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save selection")
	}
	changed = s.selectedID != profileID
	s.selectedID = profileID
	return changed, nil
}

func (s *ProfileService) selected(profileID string) {
	s.logger.Info("profile selected", "profile_id", profileID)
	s.notify(profileID)
}

// Add validates the input, creates a level 1 profile and appends it.
func (s *ProfileService) Add(ctx context.Context, in domain.NewProfile) (domain.Profile, error) {
	in = in.Normalize()
	if err := s.validator.Validate(in); err != nil {
		return domain.Profile{}, err
	}

	profileID, err := id.NewProfileID()
	if err != nil {
		return domain.Profile{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate profile id")
	}
	profile := in.Build(profileID)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.profiles), profile)
	if err := s.repo.SaveProfiles(ctx, next); err != nil {
		return domain.Profile{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save profiles")
	}
	s.profiles = next

	s.logger.Info("profile added", "profile_id", profile.ID, "name", profile.Name, "age", profile.Age)
	return profile, nil
}

// Remove deletes a profile. Unknown ids are a no-op. Removing the selected
// profile also clears the selection.
func (s *ProfileService) Remove(ctx context.Context, profileID string) error {
	s.changeMu.Lock()
	defer s.changeMu.Unlock()

	s.mu.Lock()

	i := indexOf(s.profiles, profileID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	wasSelected := s.selectedID == profileID

	if wasSelected {
		if err := s.repo.SaveSelectedProfileID(ctx, ""); err != nil {
			s.mu.Unlock()
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to clear selection")
		}
	}

	next := slices.Delete(slices.Clone(s.profiles), i, i+1)
	if err := s.repo.SaveProfiles(ctx, next); err != nil {
		if wasSelected {
			if restoreErr := s.repo.SaveSelectedProfileID(ctx, profileID); restoreErr != nil {
				s.logger.Error("failed to restore selection", "profile_id", profileID, "error", restoreErr)
			}
		}
		s.mu.Unlock()
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save profiles")
	}

	s.profiles = next
	if wasSelected {
		s.selectedID = ""
	}
	s.mu.Unlock()

	s.logger.Info("profile removed", "profile_id", profileID, "was_selected", wasSelected)

	// Listeners stop the live tasks first; a tick after the purge would
	// journal events for a profile that no longer exists.
	if wasSelected {
		s.notify("")
	}
	if s.purger != nil {
		if n, err := s.purger.DeleteProfileActivity(ctx, profileID); err != nil {
			s.logger.Warn("failed to purge activity", "profile_id", profileID, "error", err)
		} else if n > 0 {
			s.logger.Debug("purged activity", "profile_id", profileID, "events", n)
		}
	}
	return nil
}

func (s *ProfileService) notify(profileID string) {
	for _, l := range s.listeners {
		l.SelectionChanged(profileID)
	}
}

func indexOf(profiles []domain.Profile, profileID string) int {
	if profileID == "" {
		return -1
	}
	return slices.IndexFunc(profiles, func(p domain.Profile) bool { return p.ID == profileID })
}
