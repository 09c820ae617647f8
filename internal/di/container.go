// Package di provides dependency injection configuration for the SnapSense server.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/snapsense/snapsense-server/internal/config"
	"github.com/snapsense/snapsense-server/internal/di/providers"
	"github.com/snapsense/snapsense-server/internal/logger"
	"github.com/snapsense/snapsense-server/internal/report"
	"github.com/snapsense/snapsense-server/internal/service"
	"github.com/snapsense/snapsense-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideJournal)
	do.Provide(injector, providers.ProvideDataSource)

	// Business services
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideDashboardService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideReportLimiter)
	do.Provide(injector, providers.ProvideMailer)
	do.Provide(injector, providers.ProvideReportService)

	// Workers
	do.Provide(injector, providers.ProvideLiveViewer)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// NewCLIContainer wires only what the command-line tool needs: storage and
// the profile service. No server, stream or live tasks.
func NewCLIContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideJournal)
	do.Provide(injector, providers.ProvideProfileService)

	return injector
}

// Bootstrap initializes all services and returns once the server is listening.
// Listeners are wired before profiles load so a restored selection starts
// the live view.
func Bootstrap(injector *do.RootScope) error {
	steps := []func(do.Injector) error{
		invoke[*logger.Logger],
		invoke[*validation.Validator],
		invoke[*providers.SSEManagerHandle],
		invoke[*providers.StoreHandle],
		invoke[*providers.JournalHandle],
		invoke[*providers.DataSourceHandle],
		invoke[*service.ProfileService],
		invoke[*service.DashboardService],
		invoke[*service.StatsService],
		invoke[*providers.RateLimiterHandle],
		invoke[*report.SESMailer],
		invoke[*service.ReportService],
		invoke[*providers.LiveViewerHandle],
	}
	for _, step := range steps {
		if err := step(injector); err != nil {
			return err
		}
	}

	profiles := do.MustInvoke[*service.ProfileService](injector)
	profiles.Initialize(context.Background())

	return invoke[*providers.HTTPServerHandle](injector)
}

func invoke[T any](i do.Injector) error {
	_, err := do.Invoke[T](i)
	return err
}
