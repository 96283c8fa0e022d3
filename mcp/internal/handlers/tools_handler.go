package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/renderjet/renderjet-go/client"
)

// ToolsHandler exposes the analyze_images tool.
type ToolsHandler struct {
	client *client.Client
}

func NewToolsHandler(c *client.Client) *ToolsHandler {
	return &ToolsHandler{client: c}
}

// RegisterTools registers the analyze_images tool.
func (th *ToolsHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("analyze_images",
		mcp.WithDescription("Run analysis tools over server-local images. Available tools: metadata, palette, ocr, faces. Returns the analysis document as JSON."),
		mcp.WithString("files", mcp.Required(), mcp.Description("Comma-separated server-local image paths")),
		mcp.WithString("tools", mcp.Required(), mcp.Description("Comma-separated analysis tools to run")),
	)
	s.AddTool(tool, th.handleAnalyze)
	return nil
}

func (th *ToolsHandler) handleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileList, _ := req.RequireString("files")
	toolList, _ := req.RequireString("tools")

	var tools []string
	for _, t := range strings.Split(toolList, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}

	parts, err := loadFiles(fileList)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read files: %v", err)), nil
	}

	resp, err := th.client.AnalyzeImages(ctx, tools, parts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyze images failed: %v", err)), nil
	}
	return mcp.NewToolResultText(marshalResult(resultPayload(resp))), nil
}
