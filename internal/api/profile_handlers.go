package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/snapsense/snapsense-server/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProfiles",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles",
		Summary:     "List profiles",
		Description: "Returns every child profile in insertion order",
		Tags:        []string{"Profiles"},
	}, s.handleListProfiles)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createProfile",
		Method:        http.MethodPost,
		Path:          "/api/v1/profiles",
		Summary:       "Add profile",
		Description:   "Creates a level 1 profile for a child aged 3 to 8",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}",
		Summary:     "Get profile",
		Tags:        []string{"Profiles"},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteProfile",
		Method:        http.MethodDelete,
		Path:          "/api/v1/profiles/{id}",
		Summary:       "Remove profile",
		Description:   "Removes a profile. Unknown ids succeed without change. Removing the selected profile clears the selection.",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteProfile)
}

func (s *Server) registerSelectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSelection",
		Method:      http.MethodGet,
		Path:        "/api/v1/selection",
		Summary:     "Get selected profile",
		Tags:        []string{"Profiles"},
	}, s.handleGetSelection)

	huma.Register(s.api, huma.Operation{
		OperationID: "setSelection",
		Method:      http.MethodPut,
		Path:        "/api/v1/selection",
		Summary:     "Select profile",
		Description: "Makes a profile active. An empty profile_id clears the selection.",
		Tags:        []string{"Profiles"},
	}, s.handleSetSelection)
}

// ProfileIDInput is the path parameter of profile-scoped routes.
type ProfileIDInput struct {
	ID string `path:"id" doc:"Profile ID"`
}

// ProfileOutput wraps one profile.
type ProfileOutput struct {
	Body domain.Profile
}

// ListProfilesOutput wraps the profile collection.
type ListProfilesOutput struct {
	Body struct {
		Profiles   []domain.Profile `json:"profiles" doc:"Profiles in insertion order"`
		SelectedID string           `json:"selected_id,omitempty" doc:"Currently selected profile"`
	}
}

// CreateProfileRequest is the body of POST /profiles.
type CreateProfileRequest struct {
	Name           string `json:"name" doc:"Child's name, at most 40 characters"`
	Age            int    `json:"age" doc:"Age in years, 3 to 8"`
	AvatarColor    string `json:"avatarColor,omitempty" doc:"Avatar background colour"`
	AvatarEmoji    string `json:"avatarEmoji,omitempty" doc:"Avatar emoji"`
	FavoriteModule string `json:"favoriteModule,omitempty" doc:"Favourite learning module"`
}

// CreateProfileInput wraps the create request.
type CreateProfileInput struct {
	Body CreateProfileRequest
}

// SelectionResponse describes the current selection.
type SelectionResponse struct {
	ProfileID string          `json:"profile_id" doc:"Selected profile ID, empty when none"`
	Profile   *domain.Profile `json:"profile,omitempty" doc:"Selected profile"`
}

// SelectionOutput wraps the selection.
type SelectionOutput struct {
	Body SelectionResponse
}

// SetSelectionInput is the body of PUT /selection.
type SetSelectionInput struct {
	Body struct {
		ProfileID string `json:"profile_id" doc:"Profile to select, empty to clear"`
	}
}

func (s *Server) handleListProfiles(_ context.Context, _ *struct{}) (*ListProfilesOutput, error) {
	out := &ListProfilesOutput{}
	out.Body.Profiles = s.services.Profile.Profiles()
	out.Body.SelectedID = s.services.Profile.SelectedID()
	return out, nil
}

func (s *Server) handleCreateProfile(ctx context.Context, input *CreateProfileInput) (*ProfileOutput, error) {
	profile, err := s.services.Profile.Add(ctx, domain.NewProfile{
		Name:           input.Body.Name,
		Age:            input.Body.Age,
		AvatarColor:    input.Body.AvatarColor,
		AvatarEmoji:    input.Body.AvatarEmoji,
		FavoriteModule: input.Body.FavoriteModule,
	})
	if err != nil {
		return nil, s.fail(ctx, "create profile", err)
	}
	return &ProfileOutput{Body: profile}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, input *ProfileIDInput) (*ProfileOutput, error) {
	profile, err := s.services.Profile.Get(input.ID)
	if err != nil {
		return nil, s.fail(ctx, "get profile", err)
	}
	return &ProfileOutput{Body: profile}, nil
}

func (s *Server) handleDeleteProfile(ctx context.Context, input *ProfileIDInput) (*struct{}, error) {
	if err := s.services.Profile.Remove(ctx, input.ID); err != nil {
		return nil, s.fail(ctx, "remove profile", err)
	}
	return nil, nil
}

func (s *Server) handleGetSelection(_ context.Context, _ *struct{}) (*SelectionOutput, error) {
	out := &SelectionOutput{}
	if profile, ok := s.services.Profile.Selected(); ok {
		out.Body.ProfileID = profile.ID
		out.Body.Profile = &profile
	}
	return out, nil
}

func (s *Server) handleSetSelection(ctx context.Context, input *SetSelectionInput) (*SelectionOutput, error) {
	profileID := input.Body.ProfileID
	var err error
	if profileID == "" {
		err = s.services.Profile.Select(ctx, "")
	} else {
		err = s.services.Profile.SelectExisting(ctx, profileID)
	}
	if err != nil {
		return nil, s.fail(ctx, "select profile", err)
	}
	return s.handleGetSelection(ctx, nil)
}
