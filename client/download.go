package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// Download is a result file fetched back into memory.
type Download struct {
	Data        []byte
	ContentType string
	FileName    string
}

// DownloadResult fetches a result URL returned by the API into a byte
// buffer. Result URLs are pre-signed storage links, so no API key is
// attached. The filename is derived from the URL path.
func (c *Client) DownloadResult(ctx context.Context, rawURL string) (*Download, error) {
	if rawURL == "" {
		return nil, ErrNoDownloadURL
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	downloadsTotal.Inc()

	return &Download{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		FileName:    fileNameFromURL(rawURL),
	}, nil
}

func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
