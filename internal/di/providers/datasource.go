package providers

import (
	"context"
	"errors"

	"github.com/samber/do/v2"

	"github.com/snapsense/snapsense-server/internal/config"
	"github.com/snapsense/snapsense-server/internal/datasource"
	"github.com/snapsense/snapsense-server/internal/logger"
)

// DataSourceHandle wraps the mock source and its fixtures watcher.
type DataSourceHandle struct {
	*datasource.MockSource
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *DataSourceHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
		<-h.done
	}
	return nil
}

// ProvideDataSource provides the dashboard data source. When a fixtures
// file is configured it is loaded now and reloaded whenever it changes.
func ProvideDataSource(i do.Injector) (*DataSourceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dsLog := log.Component("datasource")
	source := datasource.NewMockSource(
		datasource.WithLatency(cfg.DataSource.Latency),
		datasource.WithLogger(dsLog),
	)
	handle := &DataSourceHandle{MockSource: source}

	path := cfg.DataSource.FixturesPath
	if path == "" {
		return handle, nil
	}
	if err := source.ReloadFixtures(path); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle.cancel = cancel
	handle.done = make(chan struct{})
	go func() {
		defer close(handle.done)
		if err := source.WatchFixtures(ctx, path); err != nil && !errors.Is(err, context.Canceled) {
			dsLog.Error("fixtures watcher stopped", "path", path, "error", err)
		}
	}()

	log.Info("Watching dashboard fixtures", "path", path)
	return handle, nil
}
