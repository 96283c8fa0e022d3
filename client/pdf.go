package client

import (
	"context"
	"fmt"
)

// PDF processing (the pdf resource). Same tagged-union shape as the image
// resource; files travel under the `files` form field.

// PDFOperation is one action of the pdf resource.
type PDFOperation interface {
	Action() string
	fields() map[string]string
}

// MergePDF concatenates the uploaded documents in order. It takes no
// parameters; the part order is the merge order.
type MergePDF struct{}

func (MergePDF) Action() string            { return "merge" }
func (MergePDF) fields() map[string]string { return map[string]string{} }

// SplitPDF extracts page ranges, e.g. "1-3,5".
type SplitPDF struct {
	Pages string
}

func (o SplitPDF) Action() string { return "split" }
func (o SplitPDF) fields() map[string]string {
	m := map[string]string{}
	setString(m, "pages", o.Pages)
	return m
}

// CompressPDF shrinks documents at the given level.
type CompressPDF struct {
	Level string // low, medium or high; empty means server default
}

func (o CompressPDF) Action() string { return "compress" }
func (o CompressPDF) fields() map[string]string {
	m := map[string]string{}
	setString(m, "level", o.Level)
	return m
}

// ProtectPDF encrypts documents with a password.
type ProtectPDF struct {
	Password string
}

func (o ProtectPDF) Action() string { return "protect" }
func (o ProtectPDF) fields() map[string]string {
	m := map[string]string{}
	setString(m, "password", o.Password)
	return m
}

// UnlockPDF removes password protection.
type UnlockPDF struct {
	Password string
}

func (o UnlockPDF) Action() string { return "unlock" }
func (o UnlockPDF) fields() map[string]string {
	m := map[string]string{}
	setString(m, "password", o.Password)
	return m
}

// PDFToImage rasterizes document pages.
type PDFToImage struct {
	Format string // png or jpg
	DPI    int    // omitted when zero
}

func (o PDFToImage) Action() string { return "toimage" }
func (o PDFToImage) fields() map[string]string {
	m := map[string]string{}
	setString(m, "format", o.Format)
	setInt(m, "dpi", o.DPI)
	return m
}

// ProcessPDFs runs one pdf operation over the given file parts via
// POST /v1/pdf.
func (c *Client) ProcessPDFs(ctx context.Context, op PDFOperation, files ...FilePart) (*Response, error) {
	if op == nil {
		return nil, fmt.Errorf("process pdfs: operation is required")
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	fields := op.fields()
	fields["action"] = op.Action()
	return c.postMultipart(ctx, resourcePDF, "/v1/pdf", "files", fields, files)
}
