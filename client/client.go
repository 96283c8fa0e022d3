package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if os.Getenv("RENDERJET_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		// body=false: multipart uploads can be large
		reqDump, err := httputil.DumpRequestOut(req, false)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if os.Getenv("RENDERJET_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if os.Getenv("RENDERJET_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		respDump, err := httputil.DumpResponse(resp, true)
		if err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the RenderJet REST API. Every call is a single,
// stateless HTTP request; there is no retry or connection-reuse policy
// beyond what the underlying http.Client provides.
type Client struct {
	baseURL   string
	apiKey    string
	http      *http.Client
	userAgent string
}

// New constructs a Client with optional functional arguments. Credentials
// are not validated here; each call fails fast before any network I/O if
// the base URL or API key is missing.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if os.Getenv("RENDERJET_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// checkCredentials enforces the fail-fast rule: configuration errors are
// raised before a request is ever built.
func (c *Client) checkCredentials() error {
	if strings.TrimSpace(c.baseURL) == "" {
		return ErrMissingBaseURL
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// do issues a POST against the given API path and decodes the response
// envelope. resource is only used as a metric label.
func (c *Client) do(ctx context.Context, resource, path, contentType string, body io.Reader) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestsTotal.WithLabelValues(resource).Inc()

	resp, err := c.http.Do(req)
	if err != nil {
		requestFailuresTotal.WithLabelValues(resource).Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		requestFailuresTotal.WithLabelValues(resource).Inc()
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		requestFailuresTotal.WithLabelValues(resource).Inc()
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope Response
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return nil, apiErr
	}

	out := Response{Raw: raw}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("%s: decode response: %w", resource, err)
		}
	}
	return &out, nil
}

// postJSON marshals payload and POSTs it as application/json.
func (c *Client) postJSON(ctx context.Context, resource, path string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, resource, path, "application/json", strings.NewReader(string(body)))
}

// postMultipart encodes fields and file parts as multipart/form-data and
// POSTs them. fileField is the form name shared by every file part.
func (c *Client) postMultipart(ctx context.Context, resource, path, fileField string, fields map[string]string, files []FilePart) (*Response, error) {
	body, contentType, err := encodeMultipart(fileField, fields, files)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, resource, path, contentType, body)
}
