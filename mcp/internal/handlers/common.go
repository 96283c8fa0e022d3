package handlers

import (
	"context"
	"encoding/json"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/renderjet/renderjet-go/client"
)

// loadFiles reads a comma-separated list of server-local paths into file
// parts, deriving each part's MIME type from its extension.
func loadFiles(list string) ([]client.FilePart, error) {
	paths := strings.Split(list, ",")
	parts := make([]client.FilePart, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, client.FilePart{
			FileName: filepath.Base(p),
			MimeType: mime.TypeByExtension(filepath.Ext(p)),
			Data:     data,
		})
	}
	return parts, nil
}

// resultPayload flattens the response envelope for the tool result,
// keeping the raw body when it parses.
func resultPayload(resp *client.Response) map[string]interface{} {
	out := map[string]interface{}{}
	if len(resp.Raw) > 0 {
		if err := json.Unmarshal(resp.Raw, &out); err == nil {
			return out
		}
	}
	if resp.Status != "" {
		out["status"] = resp.Status
	}
	if resp.URL != "" {
		out["url"] = resp.URL
	}
	return out
}

// maybeDownload writes the first result URL to outPath when set and
// returns the path written, or "" when no download was requested.
func maybeDownload(ctx context.Context, api *client.Client, resp *client.Response, outPath string) (string, error) {
	if outPath == "" {
		return "", nil
	}
	u, err := resp.FirstURL()
	if err != nil {
		return "", err
	}
	dl, err := api.DownloadResult(ctx, u)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, dl.Data, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

// marshalResult renders the payload as indented JSON for the tool result.
func marshalResult(payload map[string]interface{}) string {
	b, _ := json.MarshalIndent(payload, "", "  ")
	return string(b)
}
