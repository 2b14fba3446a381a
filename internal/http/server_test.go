package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/gather"
	"github.com/fyrsmithlabs/briefd/internal/narrative"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	analyzer, err := briefing.NewAnalyzer(briefing.Config{}, zap.NewNop())
	require.NoError(t, err)

	srv, err := NewServer(analyzer, narrative.NewTemplateGenerator(), zap.NewNop(), nil)
	require.NoError(t, err)
	return srv
}

func TestNewServer_Validation(t *testing.T) {
	analyzer, err := briefing.NewAnalyzer(briefing.Config{}, zap.NewNop())
	require.NoError(t, err)

	_, err = NewServer(nil, narrative.NewTemplateGenerator(), zap.NewNop(), nil)
	assert.Error(t, err)

	_, err = NewServer(analyzer, nil, zap.NewNop(), nil)
	assert.Error(t, err)

	_, err = NewServer(analyzer, narrative.NewTemplateGenerator(), nil, nil)
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleMetrics(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleBriefing(t *testing.T) {
	srv := newTestServer(t)

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	body := BriefingRequest{
		Now: now,
		Pool: &gather.Pool{
			Meeting: gather.Meeting{
				ID:    "m-1",
				Title: "Q4 Planning Review",
				Attendees: []gather.Attendee{
					{Email: "sarah@co.com", Name: "Sarah"},
				},
			},
			Messages: []gather.ChatMessage{
				{
					Text:        "Action item: please review the Q4 planning deck.",
					Channel:     "planning",
					ChannelType: gather.ChannelPublic,
					Timestamp:   strconv.FormatInt(now.AddDate(0, 0, -1).Unix(), 10),
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/briefings", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BriefingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.BriefingID)
	require.NotNil(t, resp.Context)
	assert.Equal(t, 1, resp.Context.TotalItemsAnalyzed)
	assert.Equal(t, 1, resp.Context.ItemsIncluded)
	require.NotNil(t, resp.Prep)
	assert.Contains(t, resp.Prep.Markdown, "Q4 Planning Review")
}

func TestHandleBriefing_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{nope"},
		{name: "missing pool", body: "{}"},
		{name: "missing title", body: `{"pool":{"meeting":{"id":"m-1"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/briefings", bytes.NewReader([]byte(tt.body)))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			srv.echo.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
