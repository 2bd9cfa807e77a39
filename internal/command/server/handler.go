package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/internal/config"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

// RequestIDHeader 请求 ID 头，缺失时由服务端生成。
const RequestIDHeader = "X-Request-Id"

// RenderRequest POST /render 请求体。
type RenderRequest struct {
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
	Debug    bool           `json:"debug"`
	Strict   bool           `json:"strict"`
}

// RenderResponse POST /render 成功响应。
type RenderResponse struct {
	Citation string `json:"citation"`
}

// ErrorResponse 错误响应。
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewHandler 返回服务路由：GET /health 与 POST /render。
func NewHandler(cfg config.Config, logger *slog.Logger) http.Handler {
	h := &handler{cfg: cfg, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /render", h.render)

	return withRequestID(mux)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", r.Header.Get(RequestIDHeader))

	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		logger.Warn("Invalid render request", "error", err)
		writeJSON(w, statusForDecodeError(err), ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})

		return
	}
	if req.Data == nil {
		req.Data = map[string]any{}
	}

	citationCfg := h.cfg.Citation
	citationCfg.Debug = req.Debug
	// 请求只能收紧校验，不能关闭服务端配置的严格模式
	citationCfg.Strict = citationCfg.Strict || req.Strict

	text, err := citation.Render(req.Template, req.Data, command.CitationOptions(citationCfg, logger)...)
	if err != nil {
		logger.Info("Render rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})

		return
	}

	logger.Debug("Rendered citation", "length", len(text))
	writeJSON(w, http.StatusOK, RenderResponse{Citation: text})
}

func statusForDecodeError(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
