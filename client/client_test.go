package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Every resource must fail fast on missing credentials, before any
// network I/O.
func TestMissingCredentialsFailFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call to %s", r.URL.Path)
	}))
	defer srv.Close()

	ctx := context.Background()
	part := FilePart{FileName: "a.png", MimeType: "image/png", Data: []byte{1}}

	calls := map[string]func(c *Client) error{
		"h2i": func(c *Client) error {
			_, err := c.RenderImage(ctx, RenderImageRequest{HTML: "<p>hi</p>"})
			return err
		},
		"image": func(c *Client) error {
			_, err := c.ProcessImages(ctx, GrayscaleImage{}, part)
			return err
		},
		"pdf": func(c *Client) error {
			_, err := c.ProcessPDFs(ctx, MergePDF{}, part)
			return err
		},
		"tools": func(c *Client) error {
			_, err := c.AnalyzeImages(ctx, []string{ToolMetadata}, part)
			return err
		},
	}

	for name, call := range calls {
		if err := call(New(srv.URL, "")); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("%s without api key: got %v, want ErrMissingAPIKey", name, err)
		}
		if err := call(New("", "key")); !errors.Is(err, ErrMissingBaseURL) {
			t.Errorf("%s without base url: got %v, want ErrMissingBaseURL", name, err)
		}
	}
}

func TestAPIKeyHeaderAttached(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://x/out.png"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-key")
	if _, err := c.RenderImage(context.Background(), RenderImageRequest{HTML: "<p>hi</p>"}); err != nil {
		t.Fatalf("RenderImage error: %v", err)
	}
	if gotKey != "secret-key" {
		t.Fatalf("x-api-key = %q, want secret-key", gotKey)
	}
}

func TestAPIErrorFromErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"unsupported format"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	_, err := c.RenderImage(context.Background(), RenderImageRequest{HTML: "<p>hi</p>"})
	apiErr, ok := IsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", apiErr.StatusCode)
	}
	if apiErr.Message != "unsupported format" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "key")
	if _, err := c.RenderImage(context.Background(), RenderImageRequest{HTML: "x"}); err != nil {
		t.Fatalf("RenderImage error: %v", err)
	}
	if gotPath != "/v1/h2i" {
		t.Fatalf("path = %q, want /v1/h2i", gotPath)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New("http://example.invalid", "key")
	if _, err := c.RenderImage(ctx, RenderImageRequest{HTML: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
