package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-citation/internal/config"
)

func newHandler() http.Handler {
	return server.NewHandler(config.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       string
		wantErr    string
	}{
		{
			name:       "render",
			body:       `{"template": "{@title}{, by @author}{, @year}", "data": {"title": "T", "author": "A", "year": null}}`,
			wantStatus: http.StatusOK,
			want:       "T, by A",
		},
		{
			name:       "debug placeholders",
			body:       `{"template": "{@title}{, by @author}", "data": {"title": "T"}, "debug": true}`,
			wantStatus: http.StatusOK,
			want:       "T, by [author]",
		},
		{
			name:       "missing data",
			body:       `{"template": "{@title}"}`,
			wantStatus: http.StatusOK,
			want:       "",
		},
		{
			name:       "invalid template",
			body:       `{"template": "{@title", "data": {}}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid template",
		},
		{
			name:       "strict rejects misordered brackets",
			body:       `{"template": "}@a{}{@b", "strict": true}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "unmatched",
		},
		{
			name:       "malformed json",
			body:       `{"template":`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newHandler(), tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantErr != "" {
				var resp server.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Contains(t, resp.Error, tt.wantErr)

				return
			}
			var resp server.RenderResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Citation)
		})
	}
}

func TestRender_BodyLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxBody = 16
	h := server.NewHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := post(t, h, `{"template": "{@title}", "data": {"title": "a long enough title"}}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRender_ServerStrictCannotBeDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Citation.Strict = true
	h := server.NewHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := post(t, h, `{"template": "}@a{}{@b", "strict": false}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "unmatched")

	rec = post(t, newHandler(), `{"template": "}@a{}{@b", "strict": false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRender_RequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"template": "{@a}", "data": {"a": "1"}}`))
	req.Header.Set(server.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	newHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(server.RequestIDHeader))
}

func TestRender_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
