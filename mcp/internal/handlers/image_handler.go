package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/renderjet/renderjet-go/client"
	"github.com/renderjet/renderjet-go/node"
)

// ImageHandler exposes the process_images tool.
type ImageHandler struct {
	client *client.Client
}

func NewImageHandler(c *client.Client) *ImageHandler {
	return &ImageHandler{client: c}
}

// RegisterTools registers the process_images tool.
func (ih *ImageHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("process_images",
		mcp.WithDescription("Run one image action over server-local files: convert, resize, crop, rotate, compress, grayscale, watermark, or multitask (several actions in one request via `tasks`). Action-specific parameters: format, width, height, fit, left, top, angle, quality, text, position, font_size, repeat."),
		mcp.WithString("action", mcp.Required(), mcp.Description("Image action to run")),
		mcp.WithString("files", mcp.Required(), mcp.Description("Comma-separated server-local image paths")),
		mcp.WithString("format", mcp.Description("Target format for convert")),
		mcp.WithNumber("width", mcp.Description("Width for resize/crop")),
		mcp.WithNumber("height", mcp.Description("Height for resize/crop")),
		mcp.WithString("fit", mcp.Description("Fit mode for resize: cover, contain or fill")),
		mcp.WithNumber("left", mcp.Description("Left offset for crop")),
		mcp.WithNumber("top", mcp.Description("Top offset for crop")),
		mcp.WithNumber("angle", mcp.Description("Angle for rotate")),
		mcp.WithNumber("quality", mcp.Description("Quality for compress (1-100)")),
		mcp.WithString("text", mcp.Description("Text for watermark")),
		mcp.WithString("position", mcp.Description("Position for watermark")),
		mcp.WithNumber("font_size", mcp.Description("Font size for watermark")),
		mcp.WithBoolean("repeat", mcp.Description("Tile the watermark")),
		mcp.WithString("tasks", mcp.Description("Comma-separated actions for multitask")),
		mcp.WithString("output_path", mcp.Description("Server-local path to download the result to")),
	)
	s.AddTool(tool, ih.handleProcessImages)
	return nil
}

func (ih *ImageHandler) handleProcessImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, _ := req.RequireString("action")
	fileList, _ := req.RequireString("files")

	params := node.Parameters{}
	for k, v := range req.GetArguments() {
		params[k] = v
	}
	params["fontSize"] = req.GetInt("font_size", 0)

	op, err := node.ImageOperationFrom(action, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parts, err := loadFiles(fileList)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read files: %v", err)), nil
	}

	resp, err := ih.client.ProcessImages(ctx, op, parts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("process images failed: %v", err)), nil
	}

	payload := resultPayload(resp)
	if written, err := maybeDownload(ctx, ih.client, resp, req.GetString("output_path", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download failed: %v", err)), nil
	} else if written != "" {
		payload["saved_to"] = written
	}
	return mcp.NewToolResultText(marshalResult(payload)), nil
}
