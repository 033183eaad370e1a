package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/pkg/errs"
)

const maxErrorBody = 4 << 10

// RequestObserver records one backend round-trip. route is the path template, never the
// concrete path, so ids do not explode label cardinality.
type RequestObserver interface {
	BackendRequest(method, route string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) BackendRequest(string, string, int, time.Duration) {}

// Client talks to the storefront REST backend. It never retries: callers decide what a
// failure means for their flow.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	observer   RequestObserver
	logger     *slog.Logger
}

func NewClient(cfg config.BackendConfig, observer RequestObserver, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.New("backend base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		observer:   observer,
		logger:     logger,
	}, nil
}

// apiError is the decoded body of a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// request describes one call. route is the path template used for metrics and logs.
type request struct {
	method string
	route  string
	path   string
	body   any
}

func get(route, path string) request { return request{method: http.MethodGet, route: route, path: path} }

func post(route, path string, body any) request {
	return request{method: http.MethodPost, route: route, path: path, body: body}
}

func del(route, path string) request {
	return request{method: http.MethodDelete, route: route, path: path}
}

// do sends r and decodes a 2xx body into out when out is non-nil. Failures come back as
// infra.RepositoryError with a kind derived from the status code.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return infra.WrapRepoErr("encode "+r.route+" request", err, infra.KindDecodeFailure)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return infra.WrapRepoErr("build "+r.route+" request", err, infra.KindUnavailable)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.BackendRequest(r.method, r.route, 0, time.Since(start))
		c.logger.WarnContext(ctx, "backend request failed", "method", r.method, "route", r.route, "error", err)
		return infra.WrapRepoErr(r.method+" "+r.route, err, infra.KindUnavailable)
	}
	defer resp.Body.Close()
	c.observer.BackendRequest(r.method, r.route, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &apiError{Status: resp.StatusCode, Message: errorMessage(raw)}
		c.logger.DebugContext(ctx, "backend returned an error status",
			"method", r.method, "route", r.route, "status", resp.StatusCode, "message", apiErr.Message)
		return infra.HTTPError(r.method+" "+r.route, resp.StatusCode, apiErr)
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return infra.WrapRepoErr("read "+r.route+" response", err, infra.KindUnavailable)
	}
	if err := json.Unmarshal(unwrapEnvelope(raw), out); err != nil {
		return infra.WrapRepoErr("decode "+r.route+" response", err, infra.KindDecodeFailure)
	}
	return nil
}

// unwrapEnvelope accepts both bare payloads and {"data": ...} envelopes.
func unwrapEnvelope(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return trimmed
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// messageOf returns the backend's own message for a failed call, if any.
func messageOf(err error) string {
	var apiErr *apiError
	if errs.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// translate marks a client error with the storefront taxonomy. notFound is the sentinel a 404
// stands for on this endpoint; everything else is a network failure.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, errs.ErrNetworkFailure)
}
