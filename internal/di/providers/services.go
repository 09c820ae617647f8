package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/snapsense/snapsense-server/internal/config"
	"github.com/snapsense/snapsense-server/internal/logger"
	"github.com/snapsense/snapsense-server/internal/ratelimit"
	"github.com/snapsense/snapsense-server/internal/report"
	"github.com/snapsense/snapsense-server/internal/service"
	"github.com/snapsense/snapsense-server/internal/validation"
)

// ProvideProfileService provides the profile service. It is not
// initialized here; Bootstrap does that once listeners are wired.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	journalHandle := do.MustInvoke[*JournalHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewProfileService(storeHandle.Store, validator, log.Component("profiles"))
	svc.SetActivityPurger(journalHandle.Store)
	return svc, nil
}

// ProvideDashboardService provides the dashboard service.
func ProvideDashboardService(i do.Injector) (*service.DashboardService, error) {
	source := do.MustInvoke[*DataSourceHandle](i)
	journalHandle := do.MustInvoke[*JournalHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDashboardService(source.MockSource, journalHandle.Store, sseHandle.Manager, log.Component("dashboard")), nil
}

// ProvideStatsService provides the stats service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	source := do.MustInvoke[*DataSourceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(source.MockSource, log.Component("stats")), nil
}

// RateLimiterHandle wraps the report send limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideReportLimiter provides the per-profile report send limiter.
func ProvideReportLimiter(_ do.Injector) (*RateLimiterHandle, error) {
	return &RateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(service.ReportSendInterval, service.ReportSendBurst),
	}, nil
}

// ProvideMailer provides the SES report mailer, disabled without addresses.
func ProvideMailer(i do.Injector) (*report.SESMailer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return report.NewSESMailer(context.Background(), report.MailConfig{
		From:   cfg.Report.FromEmail,
		To:     cfg.Report.ToEmail,
		Region: cfg.Report.AWSRegion,
	}, log.Component("mail"))
}

// ProvideReportService provides the report service.
func ProvideReportService(i do.Injector) (*service.ReportService, error) {
	profiles := do.MustInvoke[*service.ProfileService](i)
	dashboards := do.MustInvoke[*service.DashboardService](i)
	mailer := do.MustInvoke[*report.SESMailer](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReportService(profiles, dashboards, mailer, limiter.KeyedRateLimiter, log.Component("report")), nil
}
