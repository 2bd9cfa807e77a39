package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-citation/internal/config"
)

// retryBackoff 第 n 次重试前等待 n 倍该时长。
const retryBackoff = 200 * time.Millisecond

// Client 调用引用渲染服务。
type Client struct {
	baseURL string
	http    *http.Client
	retries int
}

// New 根据配置创建客户端。
func New(cfg config.ClientConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: max(cfg.Retries, 0),
	}
}

// Health 检查服务是否可用。
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

// Render 请求服务端渲染，服务端拒绝时返回其错误信息。
func (c *Client) Render(ctx context.Context, req server.RenderRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/render", payload)
	if err != nil {
		return "", err
	}

	var resp server.RenderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return resp.Citation, nil
}

// statusError 非 2xx 响应。
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("server returned %d: %s", e.code, e.message)
	}

	return fmt.Sprintf("server returned %d", e.code)
}

// do 发送请求，网络错误与 5xx 响应会重试。
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying request", "path", path, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		body, err := c.send(ctx, method, path, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) && se.code < http.StatusInternalServerError {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp server.ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, &statusError{code: resp.StatusCode, message: errResp.Error}
	}

	return body, nil
}
