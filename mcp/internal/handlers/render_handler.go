package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/renderjet/renderjet-go/client"
)

// RenderHandler exposes the render_html_image and render_html_pdf tools.
type RenderHandler struct {
	client *client.Client
}

func NewRenderHandler(c *client.Client) *RenderHandler {
	return &RenderHandler{client: c}
}

// RegisterTools registers both h2i tools.
func (rh *RenderHandler) RegisterTools(s *server.MCPServer) error {
	imageTool := mcp.NewTool("render_html_image",
		mcp.WithDescription("Render an HTML fragment (plus optional CSS) to a raster image. Returns the result URL; set output_path to also download the image to a server-local file."),
		mcp.WithString("html", mcp.Required(), mcp.Description("HTML fragment to render")),
		mcp.WithString("css", mcp.Description("CSS applied to the fragment")),
		mcp.WithNumber("width", mcp.Description("Viewport width in pixels (default 1000)")),
		mcp.WithNumber("height", mcp.Description("Viewport height in pixels (default 1500)")),
		mcp.WithString("format", mcp.Description("Output format: png, jpg or webp (default png)")),
		mcp.WithString("output_path", mcp.Description("Server-local path to download the result to")),
	)
	s.AddTool(imageTool, rh.handleRenderImage)

	pdfTool := mcp.NewTool("render_html_pdf",
		mcp.WithDescription("Render an HTML fragment (plus optional CSS) to a PDF document. Returns the result URL; set output_path to also download the PDF to a server-local file."),
		mcp.WithString("html", mcp.Required(), mcp.Description("HTML fragment to render")),
		mcp.WithString("css", mcp.Description("CSS applied to the fragment")),
		mcp.WithNumber("width", mcp.Description("Viewport width in pixels (default 1000)")),
		mcp.WithNumber("height", mcp.Description("Viewport height in pixels (default 1500)")),
		mcp.WithString("page_format", mcp.Description("Page format: A4, Letter or Legal (default A4)")),
		mcp.WithBoolean("landscape", mcp.Description("Landscape orientation")),
		mcp.WithNumber("margin", mcp.Description("Page margin in millimetres")),
		mcp.WithString("output_path", mcp.Description("Server-local path to download the result to")),
	)
	s.AddTool(pdfTool, rh.handleRenderPDF)
	return nil
}

func (rh *RenderHandler) handleRenderImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	html, _ := req.RequireString("html")

	resp, err := rh.client.RenderImage(ctx, client.RenderImageRequest{
		HTML:   html,
		CSS:    req.GetString("css", ""),
		Width:  req.GetInt("width", 0),
		Height: req.GetInt("height", 0),
		Format: req.GetString("format", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render image failed: %v", err)), nil
	}
	return rh.finish(ctx, req, resp)
}

func (rh *RenderHandler) handleRenderPDF(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	html, _ := req.RequireString("html")

	resp, err := rh.client.RenderPDF(ctx, client.RenderPDFRequest{
		HTML:       html,
		CSS:        req.GetString("css", ""),
		Width:      req.GetInt("width", 0),
		Height:     req.GetInt("height", 0),
		PageFormat: req.GetString("page_format", ""),
		Landscape:  req.GetBool("landscape", false),
		Margin:     req.GetInt("margin", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render pdf failed: %v", err)), nil
	}
	return rh.finish(ctx, req, resp)
}

func (rh *RenderHandler) finish(ctx context.Context, req mcp.CallToolRequest, resp *client.Response) (*mcp.CallToolResult, error) {
	payload := resultPayload(resp)
	if written, err := maybeDownload(ctx, rh.client, resp, req.GetString("output_path", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download failed: %v", err)), nil
	} else if written != "" {
		payload["saved_to"] = written
	}
	return mcp.NewToolResultText(marshalResult(payload)), nil
}
