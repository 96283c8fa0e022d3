package client

import (
	"context"
	"fmt"
	"strings"
)

// Image analysis (the tools resource). The endpoint takes the images plus
// a comma-joined list of analysis tools and returns a JSON document whose
// shape depends on the tools selected; callers read it from Response.Raw.

// Known analysis tools accepted by POST /v1/tools.
const (
	ToolMetadata = "metadata"
	ToolPalette  = "palette"
	ToolOCR      = "ocr"
	ToolFaces    = "faces"
)

// AnalyzeImages runs the given analysis tools over the file parts.
func (c *Client) AnalyzeImages(ctx context.Context, tools []string, files ...FilePart) (*Response, error) {
	if len(tools) == 0 {
		return nil, fmt.Errorf("analyze images: at least one tool is required")
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	fields := map[string]string{"tools": strings.Join(tools, ",")}
	return c.postMultipart(ctx, resourceTools, "/v1/tools", "images", fields, files)
}
