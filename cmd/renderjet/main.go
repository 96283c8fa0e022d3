package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/renderjet/renderjet-go/client"
	"github.com/renderjet/renderjet-go/internal/config"
	"github.com/renderjet/renderjet-go/node"
)

var baseURL string
var apiKey string
var debug bool

const requestTimeout = 120 * time.Second

func dbg(v interface{}) {
	if !debug {
		return
	}
	log.Debug().Interface("data", v).Msg("debug output")
}

func main() {
	_ = godotenv.Load()

	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("invalid environment configuration")
	}

	rootCmd := &cobra.Command{
		Use:   "renderjet",
		Short: "RenderJet CLI for HTML rendering and image/PDF processing",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("RENDERJET_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(cfg.LogLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", cfg.BaseURL, "Base URL of the RenderJet API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", cfg.APIKey, "API key (env RENDERJET_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	// Sub-commands
	rootCmd.AddCommand(newRenderImageCmd())
	rootCmd.AddCommand(newRenderPDFCmd())
	rootCmd.AddCommand(newConvertImageCmd())
	rootCmd.AddCommand(newResizeImageCmd())
	rootCmd.AddCommand(newCropImageCmd())
	rootCmd.AddCommand(newRotateImageCmd())
	rootCmd.AddCommand(newCompressImageCmd())
	rootCmd.AddCommand(newGrayscaleImageCmd())
	rootCmd.AddCommand(newWatermarkImageCmd())
	rootCmd.AddCommand(newMultitaskImagesCmd())
	rootCmd.AddCommand(newMergePDFCmd())
	rootCmd.AddCommand(newSplitPDFCmd())
	rootCmd.AddCommand(newCompressPDFCmd())
	rootCmd.AddCommand(newProtectPDFCmd())
	rootCmd.AddCommand(newUnlockPDFCmd())
	rootCmd.AddCommand(newPDFToImageCmd())
	rootCmd.AddCommand(newAnalyzeImagesCmd())
	rootCmd.AddCommand(newDescribeCmd())

	return rootCmd
}

func newAPIClient() *client.Client {
	return client.New(baseURL, apiKey, client.WithUserAgent("renderjet-cli"))
}

// loadParts reads local files into multipart file parts, deriving MIME
// types from extensions.
func loadParts(paths []string) ([]client.FilePart, error) {
	parts := make([]client.FilePart, 0, len(paths))
	for _, p := range paths {
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

// finishResponse either downloads the first result URL to out or prints
// the response body as indented JSON.
func finishResponse(ctx context.Context, c *client.Client, resp *client.Response, out string) error {
	if out != "" {
		u, err := resp.FirstURL()
		if err != nil {
			return err
		}
		dl, err := c.DownloadResult(ctx, u)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, dl.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Saved: %s (%d bytes)\n", out, len(dl.Data))
		return nil
	}

	var pretty interface{}
	if len(resp.Raw) > 0 && json.Unmarshal(resp.Raw, &pretty) == nil {
		b, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(b))
		return nil
	}
	if resp.URL != "" {
		fmt.Println(resp.URL)
	}
	return nil
}

// runFileOp is the shared skeleton of every multipart sub-command.
func runFileOp(cmd *cobra.Command, args []string, name, out string,
	call func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error)) error {

	if len(args) == 0 {
		return fmt.Errorf("at least one input file is required")
	}
	parts, err := loadParts(args)
	if err != nil {
		return err
	}

	log.Debug().Str("operation", name).Int("files", len(parts)).Str("base_url", baseURL).Msg("sending request")

	c := newAPIClient()
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := call(ctx, c, parts)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("operation", name).Dur("elapsed", elapsed).Msg("request failed")
		return err
	}
	log.Debug().Str("operation", name).Dur("elapsed", elapsed).Msg("request completed")

	dbg(resp)
	return finishResponse(ctx, c, resp, out)
}

func newRenderImageCmd() *cobra.Command {
	var html, htmlFile, css, format, out string
	var width, height int

	cmd := &cobra.Command{
		Use:   "render-image",
		Short: "Render HTML to an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if html, err = resolveHTML(html, htmlFile); err != nil {
				return err
			}

			log.Debug().Int("html_len", len(html)).Str("format", format).Str("base_url", baseURL).Msg("rendering image")

			c := newAPIClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			resp, err := c.RenderImage(ctx, client.RenderImageRequest{
				HTML:   html,
				CSS:    css,
				Width:  width,
				Height: height,
				Format: format,
			})
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Dur("elapsed", elapsed).Msg("render image failed")
				return err
			}
			log.Debug().Dur("elapsed", elapsed).Msg("render image completed")

			dbg(resp)
			return finishResponse(ctx, c, resp, out)
		},
	}

	cmd.Flags().StringVar(&html, "html", "", "HTML fragment to render")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "Read the HTML fragment from a file")
	cmd.Flags().StringVar(&css, "css", "", "CSS applied to the fragment")
	cmd.Flags().IntVar(&width, "width", 0, "Viewport width in pixels (default 1000)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height in pixels (default 1500)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: png, jpg or webp (default png)")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")

	return cmd
}

func newRenderPDFCmd() *cobra.Command {
	var html, htmlFile, css, pageFormat, out string
	var width, height, margin int
	var landscape bool

	cmd := &cobra.Command{
		Use:   "render-pdf",
		Short: "Render HTML to a PDF document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if html, err = resolveHTML(html, htmlFile); err != nil {
				return err
			}

			log.Debug().Int("html_len", len(html)).Str("page_format", pageFormat).Bool("landscape", landscape).Msg("rendering pdf")

			c := newAPIClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			start := time.Now()
			resp, err := c.RenderPDF(ctx, client.RenderPDFRequest{
				HTML:       html,
				CSS:        css,
				Width:      width,
				Height:     height,
				PageFormat: pageFormat,
				Landscape:  landscape,
				Margin:     margin,
			})
			elapsed := time.Since(start)

			if err != nil {
				log.Error().Err(err).Dur("elapsed", elapsed).Msg("render pdf failed")
				return err
			}
			log.Debug().Dur("elapsed", elapsed).Msg("render pdf completed")

			dbg(resp)
			return finishResponse(ctx, c, resp, out)
		},
	}

	cmd.Flags().StringVar(&html, "html", "", "HTML fragment to render")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "Read the HTML fragment from a file")
	cmd.Flags().StringVar(&css, "css", "", "CSS applied to the fragment")
	cmd.Flags().IntVar(&width, "width", 0, "Viewport width in pixels (default 1000)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height in pixels (default 1500)")
	cmd.Flags().StringVar(&pageFormat, "page-format", "", "Page format: A4, Letter or Legal (default A4)")
	cmd.Flags().BoolVar(&landscape, "landscape", false, "Landscape orientation")
	cmd.Flags().IntVar(&margin, "margin", 0, "Page margin in millimetres")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")

	return cmd
}

func resolveHTML(html, htmlFile string) (string, error) {
	if html != "" {
		return html, nil
	}
	if htmlFile == "" {
		return "", fmt.Errorf("--html or --html-file is required")
	}
	data, err := os.ReadFile(htmlFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newConvertImageCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "convert-image [files...]",
		Short: "Convert images to another format",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "convert", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.ConvertImage{Format: format}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "png", "Target format: png, jpg, webp or gif")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newResizeImageCmd() *cobra.Command {
	var fit, out string
	var width, height int

	cmd := &cobra.Command{
		Use:   "resize-image [files...]",
		Short: "Resize images to a bounding box",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "resize", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.ResizeImage{Width: width, Height: height, Fit: fit}, parts...)
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Target width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Target height in pixels")
	cmd.Flags().StringVar(&fit, "fit", "", "Fit mode: cover, contain or fill")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newCropImageCmd() *cobra.Command {
	var out string
	var left, top, width, height int

	cmd := &cobra.Command{
		Use:   "crop-image [files...]",
		Short: "Crop a rectangle out of images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "crop", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.CropImage{Left: left, Top: top, Width: width, Height: height}, parts...)
			})
		},
	}

	cmd.Flags().IntVar(&left, "left", 0, "Left offset in pixels")
	cmd.Flags().IntVar(&top, "top", 0, "Top offset in pixels")
	cmd.Flags().IntVar(&width, "width", 0, "Crop width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Crop height in pixels")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newRotateImageCmd() *cobra.Command {
	var out string
	var angle int

	cmd := &cobra.Command{
		Use:   "rotate-image [files...]",
		Short: "Rotate images clockwise",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "rotate", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.RotateImage{Angle: angle}, parts...)
			})
		},
	}

	cmd.Flags().IntVar(&angle, "angle", 90, "Rotation angle in degrees")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newCompressImageCmd() *cobra.Command {
	var out string
	var quality int

	cmd := &cobra.Command{
		Use:   "compress-image [files...]",
		Short: "Re-encode images at a lower quality",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "compress", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.CompressImage{Quality: quality}, parts...)
			})
		},
	}

	cmd.Flags().IntVar(&quality, "quality", 0, "Quality 1-100 (0 uses the server default)")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newGrayscaleImageCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "grayscale-image [files...]",
		Short: "Desaturate images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "grayscale", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.GrayscaleImage{}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newWatermarkImageCmd() *cobra.Command {
	var text, position, out string
	var fontSize int
	var repeat bool

	cmd := &cobra.Command{
		Use:   "watermark-image [files...]",
		Short: "Overlay text on images",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return fmt.Errorf("--text is required")
			}
			return runFileOp(cmd, args, "watermark", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, client.WatermarkImage{Text: text, Position: position, FontSize: fontSize, Repeat: repeat}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Watermark text (required)")
	cmd.Flags().StringVar(&position, "position", "", "Position, e.g. center or southeast")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Font size in points")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "Tile the watermark across the image")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newMultitaskImagesCmd() *cobra.Command {
	var tasks, format, fit, text, position, out string
	var width, height, left, top, angle, quality, fontSize int
	var repeat bool

	cmd := &cobra.Command{
		Use:   "multitask-images [files...]",
		Short: "Combine several image actions into one request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tasks == "" {
				return fmt.Errorf("--tasks is required")
			}
			params := node.Parameters{
				"tasks":    tasks,
				"format":   format,
				"fit":      fit,
				"text":     text,
				"position": position,
				"width":    width,
				"height":   height,
				"left":     left,
				"top":      top,
				"angle":    angle,
				"quality":  quality,
				"fontSize": fontSize,
				"repeat":   repeat,
			}
			op, err := node.ImageOperationFrom("multitask", params)
			if err != nil {
				return err
			}
			return runFileOp(cmd, args, "multitask", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessImages(ctx, op, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&tasks, "tasks", "", "Comma-separated actions, e.g. resize,convert (required)")
	cmd.Flags().StringVar(&format, "format", "", "Target format for convert")
	cmd.Flags().IntVar(&width, "width", 0, "Width for resize/crop")
	cmd.Flags().IntVar(&height, "height", 0, "Height for resize/crop")
	cmd.Flags().StringVar(&fit, "fit", "", "Fit mode for resize")
	cmd.Flags().IntVar(&left, "left", 0, "Left offset for crop")
	cmd.Flags().IntVar(&top, "top", 0, "Top offset for crop")
	cmd.Flags().IntVar(&angle, "angle", 0, "Angle for rotate")
	cmd.Flags().IntVar(&quality, "quality", 0, "Quality for compress")
	cmd.Flags().StringVar(&text, "text", "", "Text for watermark")
	cmd.Flags().StringVar(&position, "position", "", "Position for watermark")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Font size for watermark")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "Tile the watermark")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	_ = cmd.MarkFlagRequired("tasks")
	return cmd
}

func newMergePDFCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "merge-pdf [files...]",
		Short: "Merge PDF documents in argument order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "merge", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessPDFs(ctx, client.MergePDF{}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newSplitPDFCmd() *cobra.Command {
	var pages, out string

	cmd := &cobra.Command{
		Use:   "split-pdf [files...]",
		Short: "Extract page ranges from PDF documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages == "" {
				return fmt.Errorf("--pages is required")
			}
			return runFileOp(cmd, args, "split", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessPDFs(ctx, client.SplitPDF{Pages: pages}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&pages, "pages", "", "Page ranges, e.g. 1-3,5 (required)")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	_ = cmd.MarkFlagRequired("pages")
	return cmd
}

func newCompressPDFCmd() *cobra.Command {
	var level, out string

	cmd := &cobra.Command{
		Use:   "compress-pdf [files...]",
		Short: "Shrink PDF documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "compress", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessPDFs(ctx, client.CompressPDF{Level: level}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Compression level: low, medium or high")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newProtectPDFCmd() *cobra.Command {
	var password, out string

	cmd := &cobra.Command{
		Use:   "protect-pdf [files...]",
		Short: "Encrypt PDF documents with a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			return runFileOp(cmd, args, "protect", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessPDFs(ctx, client.ProtectPDF{Password: password}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to set (required)")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUnlockPDFCmd() *cobra.Command {
	var password, out string

	cmd := &cobra.Command{
		Use:   "unlock-pdf [files...]",
		Short: "Remove password protection from PDF documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			return runFileOp(cmd, args, "unlock", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessPDFs(ctx, client.UnlockPDF{Password: password}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Current password (required)")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newPDFToImageCmd() *cobra.Command {
	var format, out string
	var dpi int

	cmd := &cobra.Command{
		Use:   "pdf-to-image [files...]",
		Short: "Rasterize PDF pages to images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFileOp(cmd, args, "toimage", out, func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.ProcessPDFs(ctx, client.PDFToImage{Format: format, DPI: dpi}, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Image format: png or jpg (default png)")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "Raster density")
	cmd.Flags().StringVar(&out, "out", "", "Download the result to this path")
	return cmd
}

func newAnalyzeImagesCmd() *cobra.Command {
	var tools string

	cmd := &cobra.Command{
		Use:   "analyze-images [files...]",
		Short: "Run analysis tools over images",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tools == "" {
				return fmt.Errorf("--tools is required")
			}
			var selected []string
			for _, t := range strings.Split(tools, ",") {
				if t = strings.TrimSpace(t); t != "" {
					selected = append(selected, t)
				}
			}
			return runFileOp(cmd, args, "analyze", "", func(ctx context.Context, c *client.Client, parts []client.FilePart) (*client.Response, error) {
				return c.AnalyzeImages(ctx, selected, parts...)
			})
		},
	}

	cmd.Flags().StringVar(&tools, "tools", "", "Comma-separated tools: metadata, palette, ocr, faces (required)")
	_ = cmd.MarkFlagRequired("tools")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the resource/operation/field schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range node.Schema() {
				fmt.Printf("%s (%s)\n", r.Label, r.Name)
				for _, op := range r.Operations {
					fmt.Printf("  %s (%s)\n", op.Label, op.Name)
					for _, f := range op.Fields {
						line := fmt.Sprintf("    %-18s %-8s", f.Name, f.Type)
						if f.Required {
							line += " required"
						}
						if f.Default != nil && f.Default != "" {
							line += fmt.Sprintf(" default=%v", f.Default)
						}
						if len(f.Options) > 0 {
							line += " [" + strings.Join(f.Options, ", ") + "]"
						}
						fmt.Println(line)
					}
				}
			}
			return nil
		},
	}
}
