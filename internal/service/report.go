package service

import (
	"context"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/snapsense/snapsense-server/internal/domain"
	domainerrors "github.com/snapsense/snapsense-server/internal/errors"
	"github.com/snapsense/snapsense-server/internal/ratelimit"
	"github.com/snapsense/snapsense-server/internal/report"
)

// Report send limits per profile.
const (
	ReportSendInterval = time.Minute
	ReportSendBurst    = 2
)

// ProfileReader looks up profiles.
type ProfileReader interface {
	Get(profileID string) (domain.Profile, error)
}

// ReportService builds, renders and mails weekly reports.
type ReportService struct {
	profiles   ProfileReader
	dashboards *DashboardService
	mailer     report.Mailer
	limiter    *ratelimit.KeyedRateLimiter
	now        func() time.Time
	logger     *slog.Logger
}

// NewReportService creates a new report service.
func NewReportService(
	profiles ProfileReader,
	dashboards *DashboardService,
	mailer report.Mailer,
	limiter *ratelimit.KeyedRateLimiter,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		profiles:   profiles,
		dashboards: dashboards,
		mailer:     mailer,
		limiter:    limiter,
		now:        time.Now,
		logger:     logger,
	}
}

// Build assembles the report for a profile.
func (s *ReportService) Build(ctx context.Context, profileID string) (*report.Report, error) {
	profile, err := s.profiles.Get(profileID)
	if err != nil {
		return nil, err
	}
	d, err := s.dashboards.Payload(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return report.Build(profile, d, d.Activity, s.now()), nil
}

// HTML renders the report as HTML.
func (s *ReportService) HTML(ctx context.Context, profileID string) (string, error) {
	r, err := s.Build(ctx, profileID)
	if err != nil {
		return "", err
	}
	html, err := r.HTML()
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to render report")
	}
	return html, nil
}

// Markdown renders the report as Markdown.
func (s *ReportService) Markdown(ctx context.Context, profileID string) (string, error) {
	r, err := s.Build(ctx, profileID)
	if err != nil {
		return "", err
	}
	md, err := r.Markdown()
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to render report")
	}
	return md, nil
}

// Chart writes the EXP chart PNG to w.
func (s *ReportService) Chart(ctx context.Context, profileID string, w io.Writer) error {
	r, err := s.Build(ctx, profileID)
	if err != nil {
		return err
	}
	if err := r.WriteChart(w); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to render chart")
	}
	return nil
}

// SendResult describes a delivered report.
type SendResult struct {
	ProfileID string    `json:"profileId"`
	Subject   string    `json:"subject"`
	SentAt    time.Time `json:"sentAt"`
}

// Send mails the report to the configured parent address.
func (s *ReportService) Send(ctx context.Context, profileID string) (*SendResult, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return nil, domainerrors.Unavailable("report mail is not configured")
	}

	r, err := s.Build(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(profileID) {
		wait := s.limiter.RetryAfter(profileID)
		return nil, domainerrors.RateLimited("report was sent recently, try again later").
			WithDetails(map[string]int{"retry_after_seconds": int(math.Ceil(wait.Seconds()))})
	}

	html, err := r.HTML()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to render report")
	}
	msg := report.Message{Subject: r.Title(), HTML: html, Text: r.Text()}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "failed to send report")
	}

	s.logger.Info("weekly report sent", "profile_id", profileID)
	return &SendResult{ProfileID: profileID, Subject: msg.Subject, SentAt: s.now().UTC()}, nil
}
