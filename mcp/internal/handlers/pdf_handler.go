package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/renderjet/renderjet-go/client"
	"github.com/renderjet/renderjet-go/node"
)

// PDFHandler exposes the process_pdfs tool.
type PDFHandler struct {
	client *client.Client
}

func NewPDFHandler(c *client.Client) *PDFHandler {
	return &PDFHandler{client: c}
}

// RegisterTools registers the process_pdfs tool.
func (ph *PDFHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("process_pdfs",
		mcp.WithDescription("Run one pdf action over server-local files: merge, split, compress, protect, unlock, or toimage. Action-specific parameters: pages, level, password, format, dpi."),
		mcp.WithString("action", mcp.Required(), mcp.Description("PDF action to run")),
		mcp.WithString("files", mcp.Required(), mcp.Description("Comma-separated server-local PDF paths")),
		mcp.WithString("pages", mcp.Description("Page ranges for split, e.g. 1-3,5")),
		mcp.WithString("level", mcp.Description("Compression level: low, medium or high")),
		mcp.WithString("password", mcp.Description("Password for protect/unlock")),
		mcp.WithString("format", mcp.Description("Image format for toimage: png or jpg")),
		mcp.WithNumber("dpi", mcp.Description("Raster density for toimage")),
		mcp.WithString("output_path", mcp.Description("Server-local path to download the result to")),
	)
	s.AddTool(tool, ph.handleProcessPDFs)
	return nil
}

func (ph *PDFHandler) handleProcessPDFs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, _ := req.RequireString("action")
	fileList, _ := req.RequireString("files")

	op, err := node.PDFOperationFrom(action, node.Parameters(req.GetArguments()))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parts, err := loadFiles(fileList)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read files: %v", err)), nil
	}

	resp, err := ph.client.ProcessPDFs(ctx, op, parts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("process pdfs failed: %v", err)), nil
	}

	payload := resultPayload(resp)
	if written, err := maybeDownload(ctx, ph.client, resp, req.GetString("output_path", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download failed: %v", err)), nil
	} else if written != "" {
		payload["saved_to"] = written
	}
	return mcp.NewToolResultText(marshalResult(payload)), nil
}
