package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/datasource"
	"github.com/snapsense/snapsense-server/internal/ratelimit"
	"github.com/snapsense/snapsense-server/internal/report"
	"github.com/snapsense/snapsense-server/internal/service"
	"github.com/snapsense/snapsense-server/internal/sse"
	"github.com/snapsense/snapsense-server/internal/store"
	"github.com/snapsense/snapsense-server/internal/store/sqlite"
	"github.com/snapsense/snapsense-server/internal/validation"
)

// testNow is a Wednesday.
var testNow = time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)

type fakeMailer struct {
	mu      sync.Mutex
	enabled bool
	sent    []report.Message
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(_ context.Context, msg report.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// testServer wraps the API server for testing.
type testServer struct {
	*Server
	api        humatest.TestAPI
	services   *Services
	sseManager *sse.Manager
	mailer     *fakeMailer
}

// setupTestServer creates a server over in-memory storage with the demo
// profiles loaded.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	kv, err := store.NewInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	journal, err := sqlite.Open(filepath.Join(t.TempDir(), "activity.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })

	source := datasource.NewMockSource(
		datasource.WithLatency(0),
		datasource.WithClock(func() time.Time { return testNow }),
		datasource.WithSeed(7),
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sseManager := sse.NewManager(logger)
	go sseManager.Start(ctx)

	profiles := service.NewProfileService(kv, validation.New(), logger)
	profiles.SetActivityPurger(journal)
	profiles.Initialize(ctx)

	dashboards := service.NewDashboardService(source, journal, sseManager, logger)
	dashboards.SetClock(func() time.Time { return testNow })
	stats := service.NewStatsService(source, logger)
	stats.SetClock(func() time.Time { return testNow })

	limiter := ratelimit.New(service.ReportSendInterval, service.ReportSendBurst)
	t.Cleanup(limiter.Stop)
	mailer := &fakeMailer{enabled: true}

	services := &Services{
		Profile:   profiles,
		Dashboard: dashboards,
		Stats:     stats,
		Report:    service.NewReportService(profiles, dashboards, mailer, limiter, logger),
	}

	s := NewServer(services, sseManager, Options{
		CORSOrigins: []string{"http://dashboard.test"},
		Checks:      map[string]Pinger{"kv": kv, "journal": journal},
	}, logger)

	return &testServer{
		Server:     s,
		api:        humatest.Wrap(t, s.API()),
		services:   services,
		sseManager: sseManager,
		mailer:     mailer,
	}
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	return env
}

// decodeData unwraps a successful envelope into T.
func decodeData[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	env := decodeEnvelope(t, resp)
	require.True(t, env.Success, resp.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// decodeError unwraps a failed envelope.
func decodeError(t *testing.T, resp *httptest.ResponseRecorder) *errorBody {
	t.Helper()
	env := decodeEnvelope(t, resp)
	require.False(t, env.Success, resp.Body.String())
	require.NotNil(t, env.Error, resp.Body.String())
	return env.Error
}
