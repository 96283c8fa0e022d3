package node

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/renderjet/renderjet-go/client"
)

func TestExecuteRender(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/h2i" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "url": "https://x/out.png"})
	}))
	defer srv.Close()

	n := New(client.New(srv.URL, "key"))
	params := Parameters{
		"resource":  "h2i",
		"operation": "image",
		"html":      "<p>hi</p>",
		"format":    "png",
	}

	out, err := n.Execute(context.Background(), params, []Item{{}, {}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d output items, want 2", len(out))
	}
	if out[0].JSON["url"] != "https://x/out.png" {
		t.Fatalf("output json = %#v", out[0].JSON)
	}
	if body["action"] != "image" || body["width"] != float64(1000) || body["height"] != float64(1500) {
		t.Fatalf("request body = %#v", body)
	}
}

func TestExecuteImageBinaryBridge(t *testing.T) {
	var fileNames []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		fileNames = nil
		for _, fh := range r.MultipartForm.File["images"] {
			fileNames = append(fileNames, fh.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://x/out.png"}`))
	}))
	defer srv.Close()

	n := New(client.New(srv.URL, "key"))
	item := Item{Binary: map[string]BinaryData{
		"data":  {Data: []byte{1}, FileName: "one.png", MimeType: "image/png"},
		"photo": {Data: []byte{2}, FileName: "two.png", MimeType: "image/png"},
	}}
	params := Parameters{
		"resource":         "image",
		"operation":        "resize",
		"width":            400,
		"binaryProperties": "data,photo",
	}

	if _, err := n.Execute(context.Background(), params, []Item{item}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(fileNames) != 2 || fileNames[0] != "one.png" || fileNames[1] != "two.png" {
		t.Fatalf("file parts = %v", fileNames)
	}
}

func TestExecuteDownloadsFirstResultOnly(t *testing.T) {
	var downloaded []string
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/pdf":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []map[string]string{
					{"url": srv.URL + "/files/a.png"},
					{"url": srv.URL + "/files/b.png"},
				},
			})
		default:
			downloaded = append(downloaded, r.URL.Path)
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png"))
		}
	}))
	defer srv.Close()

	n := New(client.New(srv.URL, "key"))
	item := Item{Binary: map[string]BinaryData{
		"data": {Data: []byte("pdf"), FileName: "doc.pdf", MimeType: "application/pdf"},
	}}
	params := Parameters{
		"resource":         "pdf",
		"operation":        "toimage",
		"format":           "png",
		"binaryProperties": "data",
		"download":         true,
	}

	out, err := n.Execute(context.Background(), params, []Item{item})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(downloaded) != 1 || downloaded[0] != "/files/a.png" {
		t.Fatalf("downloaded = %v, want exactly /files/a.png", downloaded)
	}
	bin, ok := out[0].Binary["data"]
	if !ok {
		t.Fatalf("output binary missing: %#v", out[0].Binary)
	}
	if string(bin.Data) != "png" || bin.FileName != "a.png" || bin.MimeType != "image/png" {
		t.Fatalf("binary = %#v", bin)
	}
}

func TestExecuteDownloadWithoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","results":[{"url":""}]}`))
	}))
	defer srv.Close()

	n := New(client.New(srv.URL, "key"))
	params := Parameters{
		"resource":  "h2i",
		"operation": "image",
		"html":      "<p>hi</p>",
		"download":  true,
	}

	_, err := n.Execute(context.Background(), params, []Item{{}})
	if !errors.Is(err, client.ErrNoDownloadURL) {
		t.Fatalf("got %v, want ErrNoDownloadURL", err)
	}
}

func TestExecuteNoBinaryProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call")
	}))
	defer srv.Close()

	n := New(client.New(srv.URL, "key"))
	params := Parameters{
		"resource":         "image",
		"operation":        "grayscale",
		"binaryProperties": "",
	}

	_, err := n.Execute(context.Background(), params, []Item{{}})
	if !errors.Is(err, ErrNoBinaryProperties) {
		t.Fatalf("got %v, want ErrNoBinaryProperties", err)
	}
}

func TestExecuteMissingBinaryProperty(t *testing.T) {
	n := New(client.New("http://example.invalid", "key"))
	params := Parameters{
		"resource":         "image",
		"operation":        "grayscale",
		"binaryProperties": "missing",
	}

	_, err := n.Execute(context.Background(), params, []Item{{}})
	if err == nil || !strings.Contains(err.Error(), `no binary property "missing"`) {
		t.Fatalf("expected missing-property error, got %v", err)
	}
}

func TestExecuteUnknownOperation(t *testing.T) {
	n := New(client.New("http://example.invalid", "key"))

	if _, err := n.Execute(context.Background(), Parameters{"resource": "image", "operation": "sharpen"}, nil); err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if _, err := n.Execute(context.Background(), Parameters{"resource": "video", "operation": "convert"}, nil); err == nil {
		t.Fatal("expected error for unknown resource")
	}
}

func TestMultitaskOperationFromParams(t *testing.T) {
	op, err := ImageOperationFrom("multitask", Parameters{
		"tasks":   "resize,convert",
		"width":   200,
		"format":  "webp",
		"quality": 0,
	})
	if err != nil {
		t.Fatalf("ImageOperationFrom error: %v", err)
	}
	if op.Action() != "multitask" {
		t.Fatalf("action = %q", op.Action())
	}

	if _, err := ImageOperationFrom("multitask", Parameters{"tasks": "multitask"}); err == nil {
		t.Fatal("expected error for nested multitask")
	}
	if _, err := ImageOperationFrom("multitask", Parameters{}); err == nil {
		t.Fatal("expected error for empty task list")
	}
}
