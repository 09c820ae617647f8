package api

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Health states, from best to worst.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// pingTimeout bounds each storage check.
const pingTimeout = 2 * time.Second

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Pings both stores and reports the live stream",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth is the state of one backing component.
type ComponentHealth struct {
	Status  string `json:"status" enum:"healthy,degraded,unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Ping round trip"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of GET /health. Status is the worst component
// status.
type HealthResponse struct {
	Status     string                     `json:"status" enum:"healthy,degraded,unhealthy"`
	Version    string                     `json:"version"`
	Profiles   int                        `json:"profiles" doc:"Number of stored profiles"`
	Components map[string]ComponentHealth `json:"components"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := HealthResponse{
		Status:     StatusHealthy,
		Version:    Version,
		Profiles:   len(s.services.Profile.Profiles()),
		Components: make(map[string]ComponentHealth, len(s.checks)+1),
	}

	for _, name := range slices.Sorted(maps.Keys(s.checks)) {
		resp.Components[name] = probe(ctx, s.checks[name])
	}
	resp.Components["sse"] = s.liveStreamHealth()

	for _, c := range resp.Components {
		resp.Status = worse(resp.Status, c.Status)
	}
	return &HealthOutput{Body: resp}, nil
}

func probe(ctx context.Context, p Pinger) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	h := ComponentHealth{Status: StatusHealthy, Latency: time.Since(start).String()}
	if err != nil {
		h.Status, h.Message = StatusUnhealthy, err.Error()
	}
	return h
}

func (s *Server) liveStreamHealth() ComponentHealth {
	if s.sseManager == nil {
		return ComponentHealth{Status: StatusDegraded, Message: "live stream not configured"}
	}
	n := s.sseManager.ClientCount()
	msg := fmt.Sprintf("%d clients connected", n)
	if n == 1 {
		msg = "1 client connected"
	}
	return ComponentHealth{Status: StatusHealthy, Message: msg}
}

func worse(a, b string) string {
	rank := func(s string) int {
		return slices.Index([]string{StatusHealthy, StatusDegraded, StatusUnhealthy}, s)
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
