package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/config"
	"github.com/stacktrack/stacktrack/internal/observability"
	"github.com/stacktrack/stacktrack/pkg/util"
)

// Client is a typed HTTP client for the upstream ticketing API. All
// operations forward the caller's session token as a bearer credential
// and live under the configured path prefix.
type Client struct {
	baseURL    string
	pathPrefix string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// New builds a client from config.
func New(cfg config.UpstreamConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		pathPrefix: cfg.PathPrefix,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
		metrics:    metrics,
	}
}

// errorEnvelope matches the upstream's error body shape. Some endpoints
// wrap the message, some send it flat.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// do performs one upstream call. body, when non-nil, is sent as JSON;
// out, when non-nil, receives the decoded 2xx response. Non-2xx
// responses become DomainErrors carrying the upstream status and
// message.
func (c *Client) do(ctx context.Context, operation, method, path, token string, query url.Values, body, out any) error {
	endpoint := c.baseURL + c.pathPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return util.NewInternalError(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return util.NewInternalError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(operation, 0)
		c.logger.Warn("upstream call failed", zap.String("operation", operation), zap.Error(err))
		return util.NewDomainError("UPSTREAM_UNAVAILABLE", "upstream API unreachable", http.StatusBadGateway, nil)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.RecordUpstream(operation, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(operation, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return util.NewInternalError(fmt.Errorf("decode %s response: %w", operation, err))
	}
	return nil
}

func (c *Client) responseError(operation string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	message := ""
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		} else if envelope.Message != "" {
			message = envelope.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusNotFound {
		c.logger.Warn("upstream error",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
	}
	return util.NewUpstreamError(resp.StatusCode, message)
}
