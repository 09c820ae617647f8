package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/snapsense/snapsense-server/internal/config"
	"github.com/snapsense/snapsense-server/internal/live"
	"github.com/snapsense/snapsense-server/internal/logger"
	"github.com/snapsense/snapsense-server/internal/service"
	"github.com/snapsense/snapsense-server/internal/sse"
)

// LiveViewerHandle wraps the live viewer with shutdown capability.
type LiveViewerHandle struct {
	*live.Viewer
}

// Shutdown implements do.Shutdownable.
func (h *LiveViewerHandle) Shutdown() error {
	return h.Close()
}

// ProvideLiveViewer provides the live viewer and subscribes it, and the
// SSE stream, to selection changes.
func ProvideLiveViewer(i do.Injector) (*LiveViewerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	profiles := do.MustInvoke[*service.ProfileService](i)
	dashboards := do.MustInvoke[*service.DashboardService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	viewer := live.NewViewer(context.Background(), dashboards, live.Intervals{
		Event:   cfg.Live.EventInterval,
		Refetch: cfg.Live.RefetchInterval,
	}, log.Component("live"))

	profiles.OnSelectionChange(viewer)
	profiles.OnSelectionChange(service.SelectionListenerFunc(func(profileID string) {
		sseHandle.Emit(sse.NewSelectionEvent(profileID))
	}))

	log.Info("Live viewer ready",
		"event_interval", cfg.Live.EventInterval,
		"refetch_interval", cfg.Live.RefetchInterval)

	return &LiveViewerHandle{Viewer: viewer}, nil
}
