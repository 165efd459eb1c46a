package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

// Headers are extra request headers, e.g. Authorization.
type Headers map[string]string

// Gateway performs single JSON requests against one base URL. It never
// retries; transport and HTTP failures are both returned to the caller.
type Gateway struct {
	http *resty.Client
	log  *zap.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.http.SetTimeout(d)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGateway creates a Gateway for baseURL.
func NewGateway(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.http.SetLogger(g.log.Sugar())
	return g
}

// Create POSTs payload to path and returns the decoded response body.
func Create[T any](ctx context.Context, g *Gateway, path string, payload any, headers Headers) (T, error) {
	var out T
	if err := g.do(ctx, http.MethodPost, path, payload, headers, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Read GETs path and returns the decoded response body.
func Read[T any](ctx context.Context, g *Gateway, path string, headers Headers) (T, error) {
	var out T
	if err := g.do(ctx, http.MethodGet, path, nil, headers, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update PUTs payload to path and returns the decoded response body.
func Update[T any](ctx context.Context, g *Gateway, path string, payload any, headers Headers) (T, error) {
	var out T
	if err := g.do(ctx, http.MethodPut, path, payload, headers, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Authenticate POSTs credentials to a login endpoint and returns the issued session.
// The session is not stored anywhere; that is up to the caller.
func Authenticate(ctx context.Context, g *Gateway, path string, creds domain.Credentials) (domain.Session, error) {
	return Create[domain.Session](ctx, g, path, creds, nil)
}

// Remove DELETEs path. No body is returned.
func (g *Gateway) Remove(ctx context.Context, path string, headers Headers) error {
	return g.do(ctx, http.MethodDelete, path, nil, headers, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body any, headers Headers, out any) error {
	reqID := uuid.NewString()
	req := g.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", reqID)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		g.log.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return fmt.Errorf("do request: %w", err)
	}
	g.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", reqID),
	)

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return newHTTPError(code, resp.Body())
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
