package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
)

// Dashboards is what the viewer drives on each tick.
type Dashboards interface {
	NextLiveEvent(ctx context.Context, profileID string) (domain.ActivityEvent, error)
	Refresh(ctx context.Context, profileID string) error
}

// Intervals configures the viewer's tasks.
type Intervals struct {
	Event   time.Duration
	Refetch time.Duration
}

// Viewer keeps the live tasks of the selected profile running. Switching
// profiles cancels the previous profile's tasks before new ones start.
type Viewer struct {
	dashboards Dashboards
	intervals  Intervals
	logger     *slog.Logger

	mu        sync.Mutex
	ctx       context.Context
	stop      context.CancelFunc
	profileID string
	tasks     []*Task
	closed    bool
}

// NewViewer creates a viewer. Tasks inherit ctx.
func NewViewer(ctx context.Context, dashboards Dashboards, intervals Intervals, logger *slog.Logger) *Viewer {
	ctx, stop := context.WithCancel(ctx)
	return &Viewer{
		dashboards: dashboards,
		intervals:  intervals,
		logger:     logger,
		ctx:        ctx,
		stop:       stop,
	}
}

// Activate starts the tasks for profileID, replacing any running ones.
// An empty id is the same as Deactivate.
func (v *Viewer) Activate(profileID string) {
	if profileID == "" {
		v.Deactivate()
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.cancelLocked()

	v.profileID = profileID
	v.tasks = []*Task{
		Every(v.ctx, v.intervals.Event, func(ctx context.Context) {
			if _, err := v.dashboards.NextLiveEvent(ctx, profileID); err != nil && ctx.Err() == nil {
				v.logger.Warn("live event failed", "profile_id", profileID, "error", err)
			}
		}),
		Every(v.ctx, v.intervals.Refetch, func(ctx context.Context) {
			// A failed refetch keeps the last view on screen.
			if err := v.dashboards.Refresh(ctx, profileID); err != nil && ctx.Err() == nil {
				v.logger.Warn("dashboard refetch failed", "profile_id", profileID, "error", err)
			}
		}),
	}
	v.logger.Info("live view active", "profile_id", profileID)
}

// Deactivate cancels the running tasks.
func (v *Viewer) Deactivate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profileID != "" {
		v.logger.Info("live view stopped", "profile_id", v.profileID)
	}
	v.cancelLocked()
}

// ProfileID returns the profile with running tasks, or "".
func (v *Viewer) ProfileID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profileID
}

// SelectionChanged follows the selected profile.
func (v *Viewer) SelectionChanged(profileID string) {
	v.Activate(profileID)
}

// Close cancels everything; later activations are ignored.
func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.cancelLocked()
	v.stop()
	return nil
}

func (v *Viewer) cancelLocked() {
	for _, t := range v.tasks {
		t.Cancel()
	}
	v.tasks = nil
	v.profileID = ""
}
