package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/report"
)

func TestGetReport_HTML(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/profiles/aria/report")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Header().Get("Content-Disposition"), ".html")
	assert.Contains(t, resp.Body.String(), "SnapSense Weekly Report for Aria")
	assert.Contains(t, resp.Body.String(), "1780/2000")
}

func TestGetReport_Markdown(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/profiles/dev/report?format=markdown")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Contains(t, resp.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, resp.Body.String(), "# SnapSense Weekly Report for Dev")
}

func TestGetReport_Errors(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/profiles/aria/report?format=pdf")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)

	resp = ts.api.Get("/api/v1/profiles/ghost/report")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetReportChart(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/profiles/aria/report/chart.png")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, report.ChartWidth, img.Bounds().Dx())
	assert.Equal(t, report.ChartHeight, img.Bounds().Dy())
}

func TestSendReport_RateLimited(t *testing.T) {
	ts := setupTestServer(t)

	for range 2 {
		resp := ts.api.Post("/api/v1/profiles/aria/report/send")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Post("/api/v1/profiles/aria/report/send")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	apiErr := decodeError(t, resp)
	assert.Equal(t, "RATE_LIMITED", apiErr.Code)
	var details map[string]int
	require.NoError(t, json.Unmarshal(apiErr.Details, &details))
	assert.Positive(t, details["retry_after_seconds"])

	assert.Len(t, ts.mailer.sent, 2)
	assert.Equal(t, "SnapSense Weekly Report for Aria", ts.mailer.sent[0].Subject)
}

func TestSendReport_MailDisabled(t *testing.T) {
	ts := setupTestServer(t)
	ts.mailer.enabled = false

	resp := ts.api.Post("/api/v1/profiles/aria/report/send")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "UNAVAILABLE", decodeError(t, resp).Code)
	assert.Empty(t, ts.mailer.sent)
}
