package node

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/renderjet/renderjet-go/client"
	"github.com/rs/zerolog/log"
)

// Node executes one configured (resource, operation) over a list of host
// items. It holds no state between executions; every item is processed
// independently and in input order.
type Node struct {
	client *client.Client
}

// New wraps an API client in a Node.
func New(c *client.Client) *Node { return &Node{client: c} }

// Execute runs the configured operation once per input item, sequentially,
// and returns one output item per input item. The first failing item
// aborts the run with its error.
func (n *Node) Execute(ctx context.Context, params Parameters, items []Item) ([]Item, error) {
	resource := params.String("resource")
	operation := params.String("operation")
	if _, _, err := LookupOperation(resource, operation); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(items))
	for i, item := range items {
		result, err := n.executeItem(ctx, resource, operation, params, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, *result)
	}

	log.Debug().Str("resource", resource).Str("operation", operation).Int("items", len(out)).Msg("execution complete")
	return out, nil
}

func (n *Node) executeItem(ctx context.Context, resource, operation string, params Parameters, item Item) (*Item, error) {
	var (
		resp *client.Response
		err  error
	)

	switch resource {
	case "h2i":
		resp, err = n.runRender(ctx, operation, params)
	case "image":
		resp, err = n.runImage(ctx, operation, params, item)
	case "pdf":
		resp, err = n.runPDF(ctx, operation, params, item)
	case "tools":
		resp, err = n.runTools(ctx, params, item)
	default:
		err = fmt.Errorf("unknown resource %q", resource)
	}
	if err != nil {
		return nil, err
	}

	out := Item{JSON: responseJSON(resp)}
	if params.Bool("download") {
		property := params.StringOr("downloadProperty", "data")
		fetch := func(u string) (*client.Download, error) { return n.client.DownloadResult(ctx, u) }
		if err := n.attachDownload(&out, resp, property, fetch); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func (n *Node) runRender(ctx context.Context, operation string, p Parameters) (*client.Response, error) {
	switch operation {
	case "image":
		return n.client.RenderImage(ctx, client.RenderImageRequest{
			HTML:   p.String("html"),
			CSS:    p.String("css"),
			Width:  p.Int("width"),
			Height: p.Int("height"),
			Format: p.String("format"),
		})
	case "pdf":
		return n.client.RenderPDF(ctx, client.RenderPDFRequest{
			HTML:       p.String("html"),
			CSS:        p.String("css"),
			Width:      p.Int("width"),
			Height:     p.Int("height"),
			PageFormat: p.String("pageFormat"),
			Landscape:  p.Bool("landscape"),
			Margin:     p.Int("margin"),
		})
	default:
		return nil, fmt.Errorf("h2i has no operation %q", operation)
	}
}

func (n *Node) runImage(ctx context.Context, operation string, p Parameters, item Item) (*client.Response, error) {
	op, err := ImageOperationFrom(operation, p)
	if err != nil {
		return nil, err
	}
	parts, err := collectParts(item, p.StringSlice("binaryProperties"))
	if err != nil {
		return nil, err
	}
	return n.client.ProcessImages(ctx, op, parts...)
}

func (n *Node) runPDF(ctx context.Context, operation string, p Parameters, item Item) (*client.Response, error) {
	op, err := PDFOperationFrom(operation, p)
	if err != nil {
		return nil, err
	}
	parts, err := collectParts(item, p.StringSlice("binaryProperties"))
	if err != nil {
		return nil, err
	}
	return n.client.ProcessPDFs(ctx, op, parts...)
}

func (n *Node) runTools(ctx context.Context, p Parameters, item Item) (*client.Response, error) {
	tools := p.StringSlice("tools")
	parts, err := collectParts(item, p.StringSlice("binaryProperties"))
	if err != nil {
		return nil, err
	}
	return n.client.AnalyzeImages(ctx, tools, parts...)
}

// ImageOperationFrom maps a configured operation name and its field values to
// the typed union the client accepts.
func ImageOperationFrom(operation string, p Parameters) (client.ImageOperation, error) {
	switch operation {
	case "convert":
		return client.ConvertImage{Format: p.String("format")}, nil
	case "resize":
		return client.ResizeImage{Width: p.Int("width"), Height: p.Int("height"), Fit: p.String("fit")}, nil
	case "crop":
		return client.CropImage{Left: p.Int("left"), Top: p.Int("top"), Width: p.Int("width"), Height: p.Int("height")}, nil
	case "rotate":
		return client.RotateImage{Angle: p.Int("angle")}, nil
	case "compress":
		return client.CompressImage{Quality: p.Int("quality")}, nil
	case "grayscale":
		return client.GrayscaleImage{}, nil
	case "watermark":
		return client.WatermarkImage{
			Text:     p.String("text"),
			Position: p.String("position"),
			FontSize: p.Int("fontSize"),
			Repeat:   p.Bool("repeat"),
		}, nil
	case "multitask":
		tasks := p.StringSlice("tasks")
		if len(tasks) == 0 {
			return nil, fmt.Errorf("multitask requires at least one task")
		}
		ops := make([]client.ImageOperation, 0, len(tasks))
		for _, task := range tasks {
			if task == "multitask" {
				return nil, fmt.Errorf("multitask cannot nest itself")
			}
			sub, err := ImageOperationFrom(task, p)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sub)
		}
		return client.Multitask{Ops: ops}, nil
	default:
		return nil, fmt.Errorf("image has no operation %q", operation)
	}
}

// PDFOperationFrom is the pdf counterpart of ImageOperationFrom.
func PDFOperationFrom(operation string, p Parameters) (client.PDFOperation, error) {
	switch operation {
	case "merge":
		return client.MergePDF{}, nil
	case "split":
		return client.SplitPDF{Pages: p.String("pages")}, nil
	case "compress":
		return client.CompressPDF{Level: p.String("level")}, nil
	case "protect":
		return client.ProtectPDF{Password: p.String("password")}, nil
	case "unlock":
		return client.UnlockPDF{Password: p.String("password")}, nil
	case "toimage":
		return client.PDFToImage{Format: p.String("format"), DPI: p.Int("dpi")}, nil
	default:
		return nil, fmt.Errorf("pdf has no operation %q", operation)
	}
}

// responseJSON flattens the API envelope into the output item's JSON
// document, preferring the raw body so analysis results survive intact.
func responseJSON(resp *client.Response) map[string]interface{} {
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
