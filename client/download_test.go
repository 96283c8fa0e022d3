package client

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFirstURL(t *testing.T) {
	cases := []struct {
		name    string
		resp    Response
		want    string
		wantErr bool
	}{
		{name: "top-level url", resp: Response{URL: "https://x/a.png"}, want: "https://x/a.png"},
		{
			name: "first of multiple results",
			resp: Response{Results: []Result{{URL: "https://x/a.png"}, {URL: "https://x/b.png"}}},
			want: "https://x/a.png",
		},
		{
			name: "skips empty result urls",
			resp: Response{Results: []Result{{URL: ""}, {URL: "https://x/b.png"}}},
			want: "https://x/b.png",
		},
		{name: "nothing to download", resp: Response{Results: []Result{{URL: ""}}}, wantErr: true},
		{name: "empty response", resp: Response{}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.resp.FirstURL()
			if tc.wantErr {
				if !errors.Is(err, ErrNoDownloadURL) {
					t.Fatalf("got %v, want ErrNoDownloadURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FirstURL error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("url = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDownloadResult(t *testing.T) {
	payload := []byte("png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/out.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	dl, err := c.DownloadResult(context.Background(), srv.URL+"/files/out.png")
	if err != nil {
		t.Fatalf("DownloadResult error: %v", err)
	}
	if !bytes.Equal(dl.Data, payload) {
		t.Fatalf("data = %q", dl.Data)
	}
	if dl.ContentType != "image/png" {
		t.Fatalf("content type = %q", dl.ContentType)
	}
	if dl.FileName != "out.png" {
		t.Fatalf("filename = %q", dl.FileName)
	}
}

func TestDownloadResultErrors(t *testing.T) {
	c := New("http://example.invalid", "key")
	if _, err := c.DownloadResult(context.Background(), ""); !errors.Is(err, ErrNoDownloadURL) {
		t.Fatalf("got %v, want ErrNoDownloadURL", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	if _, err := c.DownloadResult(context.Background(), srv.URL+"/gone.png"); err == nil {
		t.Fatal("expected error for 404 download")
	}
}

func TestEncodeMultipartSynthesizedNames(t *testing.T) {
	files := []FilePart{
		{Data: []byte{1}},
		{Data: []byte{2}},
	}
	body, contentType, err := encodeMultipart("images", nil, files)
	if err != nil {
		t.Fatalf("encodeMultipart error: %v", err)
	}

	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")
	reader := multipart.NewReader(body, boundary)
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}

	parts := form.File["images"]
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	seen := map[string]bool{}
	for _, p := range parts {
		if p.Filename == "" {
			t.Fatal("expected synthesized filename")
		}
		if !strings.HasPrefix(p.Filename, "file-") {
			t.Fatalf("filename = %q", p.Filename)
		}
		if seen[p.Filename] {
			t.Fatalf("duplicate synthesized filename %q", p.Filename)
		}
		seen[p.Filename] = true
		if ct := p.Header.Get("Content-Type"); ct != "application/octet-stream" {
			t.Fatalf("content type fallback = %q", ct)
		}
	}
}
