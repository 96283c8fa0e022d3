package client

import (
	"context"
	"fmt"
	"strings"
)

// Image processing (the image resource). Each operation is an explicit
// typed field set rather than a flat bag of parameters; the union of all
// implementations is what POST /v1/image accepts.

// ImageOperation is one action of the image resource. Implementations
// produce the action-specific multipart string fields; booleans are
// serialized as the literal strings "true"/"false" and numeric fields are
// omitted at their zero default.
type ImageOperation interface {
	Action() string
	fields() map[string]string
}

// ConvertImage re-encodes images into another format.
type ConvertImage struct {
	Format string // png, jpg, webp or gif
}

func (o ConvertImage) Action() string { return "convert" }
func (o ConvertImage) fields() map[string]string {
	m := map[string]string{}
	setString(m, "format", o.Format)
	return m
}

// ResizeImage scales images to the given box.
type ResizeImage struct {
	Width  int
	Height int
	Fit    string // cover, contain or fill
}

func (o ResizeImage) Action() string { return "resize" }
func (o ResizeImage) fields() map[string]string {
	m := map[string]string{}
	setInt(m, "width", o.Width)
	setInt(m, "height", o.Height)
	setString(m, "fit", o.Fit)
	return m
}

// CropImage cuts a rectangle out of each image.
type CropImage struct {
	Left   int
	Top    int
	Width  int
	Height int
}

func (o CropImage) Action() string { return "crop" }
func (o CropImage) fields() map[string]string {
	m := map[string]string{}
	setInt(m, "left", o.Left)
	setInt(m, "top", o.Top)
	setInt(m, "width", o.Width)
	setInt(m, "height", o.Height)
	return m
}

// RotateImage rotates images clockwise by the given angle.
type RotateImage struct {
	Angle int // degrees
}

func (o RotateImage) Action() string { return "rotate" }
func (o RotateImage) fields() map[string]string {
	m := map[string]string{}
	setInt(m, "angle", o.Angle)
	return m
}

// CompressImage re-encodes images at the given quality.
type CompressImage struct {
	Quality int // 1-100; zero means server default
}

func (o CompressImage) Action() string { return "compress" }
func (o CompressImage) fields() map[string]string {
	m := map[string]string{}
	setInt(m, "quality", o.Quality)
	return m
}

// GrayscaleImage desaturates images. It takes no parameters.
type GrayscaleImage struct{}

func (GrayscaleImage) Action() string            { return "grayscale" }
func (GrayscaleImage) fields() map[string]string { return map[string]string{} }

// WatermarkImage overlays text on each image.
type WatermarkImage struct {
	Text     string
	Position string // e.g. center, southeast
	FontSize int
	Repeat   bool // tile the watermark across the image
}

func (o WatermarkImage) Action() string { return "watermark" }
func (o WatermarkImage) fields() map[string]string {
	m := map[string]string{}
	setString(m, "text", o.Text)
	setString(m, "position", o.Position)
	setInt(m, "fontSize", o.FontSize)
	setBool(m, "repeat", o.Repeat)
	return m
}

// Multitask merges several sub-operations' parameters into one request.
// The server applies the listed tasks in order.
type Multitask struct {
	Ops []ImageOperation
}

func (o Multitask) Action() string { return "multitask" }
func (o Multitask) fields() map[string]string {
	m := map[string]string{}
	names := make([]string, 0, len(o.Ops))
	for _, sub := range o.Ops {
		names = append(names, sub.Action())
		for k, v := range sub.fields() {
			m[k] = v
		}
	}
	m["tasks"] = strings.Join(names, ",")
	return m
}

// ProcessImages runs one image operation over the given file parts via
// POST /v1/image. Files travel under the `images` form field.
func (c *Client) ProcessImages(ctx context.Context, op ImageOperation, files ...FilePart) (*Response, error) {
	if op == nil {
		return nil, fmt.Errorf("process images: operation is required")
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	fields := op.fields()
	fields["action"] = op.Action()
	return c.postMultipart(ctx, resourceImage, "/v1/image", "images", fields, files)
}
