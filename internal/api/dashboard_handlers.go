package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/snapsense/snapsense-server/internal/domain"
	"github.com/snapsense/snapsense-server/internal/service"
)

func (s *Server) registerDashboardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/dashboard",
		Summary:     "Get dashboard",
		Description: "Returns the dashboard payload with EXP progress, streaks, the streak calendar and the activity feed",
		Tags:        []string{"Dashboard"},
	}, s.handleGetDashboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStreak",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/streak",
		Summary:     "Get streak calendar",
		Tags:        []string{"Dashboard"},
	}, s.handleGetStreak)
}

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/stats",
		Summary:     "Get summary tiles",
		Description: "Returns playtime, session length, win/loss and category tiles for one range",
		Tags:        []string{"Stats"},
	}, s.handleGetStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGames",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{id}/games",
		Summary:     "Get game statistics",
		Description: "Returns one game's statistics, or the aggregate over every game",
		Tags:        []string{"Stats"},
	}, s.handleGetGames)
}

// DashboardInput selects a profile's dashboard.
type DashboardInput struct {
	ID   string `path:"id" doc:"Profile ID"`
	Game string `query:"game" doc:"Streak calendar source: all, numbering, firstAid or storyOrdering"`
}

// DashboardOutput wraps the dashboard view.
type DashboardOutput struct {
	Body *domain.DashboardView
}

// StreakOutput wraps the streak calendar.
type StreakOutput struct {
	Body *service.StreakView
}

// StatsInput selects a profile's range tiles.
type StatsInput struct {
	ID    string `path:"id" doc:"Profile ID"`
	Range string `query:"range" doc:"day, week, month or all"`
}

// StatsOutput wraps the range summary.
type StatsOutput struct {
	Body domain.RangeSummary
}

// GamesInput selects a profile's game statistics.
type GamesInput struct {
	ID   string `path:"id" doc:"Profile ID"`
	Game string `query:"game" doc:"Game to show; all aggregates every game"`
}

// GamesOutput wraps the game view and the per-game list.
type GamesOutput struct {
	Body struct {
		Selected domain.GameView   `json:"selected" doc:"Selected game or the aggregate"`
		Games    []domain.GameView `json:"games" doc:"Every game with statistics"`
	}
}

func (s *Server) handleGetDashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error) {
	if err := s.requireProfile(input.ID); err != nil {
		return nil, s.fail(ctx, "get dashboard", err)
	}
	view, err := s.services.Dashboard.View(ctx, input.ID, domain.GameID(input.Game))
	if err != nil {
		return nil, s.fail(ctx, "get dashboard", err)
	}
	return &DashboardOutput{Body: view}, nil
}

func (s *Server) handleGetStreak(ctx context.Context, input *ProfileIDInput) (*StreakOutput, error) {
	if err := s.requireProfile(input.ID); err != nil {
		return nil, s.fail(ctx, "get streak", err)
	}
	streak, err := s.services.Dashboard.Streak(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "get streak", err)
	}
	return &StreakOutput{Body: streak}, nil
}

func (s *Server) handleGetStats(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	if err := s.requireProfile(input.ID); err != nil {
		return nil, s.fail(ctx, "get stats", err)
	}
	summary, err := s.services.Stats.Range(ctx, input.ID, domain.StatsRange(input.Range))
	if err != nil {
		return nil, s.fail(ctx, "get stats", err)
	}
	return &StatsOutput{Body: summary}, nil
}

func (s *Server) handleGetGames(ctx context.Context, input *GamesInput) (*GamesOutput, error) {
	if err := s.requireProfile(input.ID); err != nil {
		return nil, s.fail(ctx, "get games", err)
	}
	selected, err := s.services.Stats.Games(ctx, input.ID, domain.GameID(input.Game))
	if err != nil {
		return nil, s.fail(ctx, "get games", err)
	}
	games, err := s.services.Stats.AllGames(ctx, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "get games", err)
	}

	out := &GamesOutput{}
	out.Body.Selected = selected
	out.Body.Games = games
	return out, nil
}
