package node

import "fmt"

// The schema describes every resource, operation and field the node
// exposes to the host. It replaces conditional field-visibility rules
// with one explicit field set per (resource, operation) pair; the
// dispatcher in node.go and the CLI/MCP surfaces both read from it.

// FieldType is the UI type of a configurable field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldOptions FieldType = "options"
	FieldList    FieldType = "list"
)

// Field is one configurable parameter of an operation.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Default  interface{}
	Required bool
	Options  []string // for FieldOptions
}

// Operation is one action within a resource.
type Operation struct {
	Name   string
	Label  string
	Fields []Field
}

// Resource is one of the four remote API surfaces.
type Resource struct {
	Name       string
	Label      string
	Multipart  bool // takes binary input via the binary bridge
	Operations []Operation
}

// Fields shared by every multipart operation: which binary buffers to
// upload, and whether/where to store the downloaded result.
var commonBinaryFields = []Field{
	{Name: "binaryProperties", Label: "Input Binary Fields", Type: FieldString, Default: "data", Required: true},
}

var commonDownloadFields = []Field{
	{Name: "download", Label: "Download Result", Type: FieldBoolean, Default: false},
	{Name: "downloadProperty", Label: "Output Binary Field", Type: FieldString, Default: "data"},
}

var schema = []Resource{
	{
		Name:  "h2i",
		Label: "HTML to Image/PDF",
		Operations: []Operation{
			{
				Name:  "image",
				Label: "Render Image",
				Fields: append([]Field{
					{Name: "html", Label: "HTML", Type: FieldString, Required: true},
					{Name: "css", Label: "CSS", Type: FieldString, Default: ""},
					{Name: "width", Label: "Width", Type: FieldNumber, Default: 1000},
					{Name: "height", Label: "Height", Type: FieldNumber, Default: 1500},
					{Name: "format", Label: "Format", Type: FieldOptions, Default: "png", Options: []string{"png", "jpg", "webp"}},
				}, commonDownloadFields...),
			},
			{
				Name:  "pdf",
				Label: "Render PDF",
				Fields: append([]Field{
					{Name: "html", Label: "HTML", Type: FieldString, Required: true},
					{Name: "css", Label: "CSS", Type: FieldString, Default: ""},
					{Name: "width", Label: "Width", Type: FieldNumber, Default: 1000},
					{Name: "height", Label: "Height", Type: FieldNumber, Default: 1500},
					{Name: "pageFormat", Label: "Page Format", Type: FieldOptions, Default: "A4", Options: []string{"A4", "Letter", "Legal"}},
					{Name: "landscape", Label: "Landscape", Type: FieldBoolean, Default: false},
					{Name: "margin", Label: "Margin (mm)", Type: FieldNumber, Default: 0},
				}, commonDownloadFields...),
			},
		},
	},
	{
		Name:      "image",
		Label:     "Image",
		Multipart: true,
		Operations: []Operation{
			{Name: "convert", Label: "Convert", Fields: multipartFields(
				Field{Name: "format", Label: "Format", Type: FieldOptions, Default: "png", Options: []string{"png", "jpg", "webp", "gif"}},
			)},
			{Name: "resize", Label: "Resize", Fields: multipartFields(
				Field{Name: "width", Label: "Width", Type: FieldNumber, Default: 0},
				Field{Name: "height", Label: "Height", Type: FieldNumber, Default: 0},
				Field{Name: "fit", Label: "Fit", Type: FieldOptions, Default: "cover", Options: []string{"cover", "contain", "fill"}},
			)},
			{Name: "crop", Label: "Crop", Fields: multipartFields(
				Field{Name: "left", Label: "Left", Type: FieldNumber, Default: 0},
				Field{Name: "top", Label: "Top", Type: FieldNumber, Default: 0},
				Field{Name: "width", Label: "Width", Type: FieldNumber, Default: 0},
				Field{Name: "height", Label: "Height", Type: FieldNumber, Default: 0},
			)},
			{Name: "rotate", Label: "Rotate", Fields: multipartFields(
				Field{Name: "angle", Label: "Angle", Type: FieldNumber, Default: 0},
			)},
			{Name: "compress", Label: "Compress", Fields: multipartFields(
				Field{Name: "quality", Label: "Quality", Type: FieldNumber, Default: 0},
			)},
			{Name: "grayscale", Label: "Grayscale", Fields: multipartFields()},
			{Name: "watermark", Label: "Watermark", Fields: multipartFields(
				Field{Name: "text", Label: "Text", Type: FieldString, Required: true},
				Field{Name: "position", Label: "Position", Type: FieldOptions, Default: "southeast", Options: []string{"center", "northwest", "northeast", "southwest", "southeast"}},
				Field{Name: "fontSize", Label: "Font Size", Type: FieldNumber, Default: 0},
				Field{Name: "repeat", Label: "Repeat", Type: FieldBoolean, Default: false},
			)},
			{Name: "multitask", Label: "Multitask", Fields: multipartFields(
				Field{Name: "tasks", Label: "Tasks", Type: FieldList, Required: true},
			)},
		},
	},
	{
		Name:      "pdf",
		Label:     "PDF",
		Multipart: true,
		Operations: []Operation{
			{Name: "merge", Label: "Merge", Fields: multipartFields()},
			{Name: "split", Label: "Split", Fields: multipartFields(
				Field{Name: "pages", Label: "Pages", Type: FieldString, Required: true},
			)},
			{Name: "compress", Label: "Compress", Fields: multipartFields(
				Field{Name: "level", Label: "Level", Type: FieldOptions, Default: "", Options: []string{"low", "medium", "high"}},
			)},
			{Name: "protect", Label: "Protect", Fields: multipartFields(
				Field{Name: "password", Label: "Password", Type: FieldString, Required: true},
			)},
			{Name: "unlock", Label: "Unlock", Fields: multipartFields(
				Field{Name: "password", Label: "Password", Type: FieldString, Required: true},
			)},
			{Name: "toimage", Label: "To Image", Fields: multipartFields(
				Field{Name: "format", Label: "Format", Type: FieldOptions, Default: "png", Options: []string{"png", "jpg"}},
				Field{Name: "dpi", Label: "DPI", Type: FieldNumber, Default: 0},
			)},
		},
	},
	{
		Name:      "tools",
		Label:     "Tools",
		Multipart: true,
		Operations: []Operation{
			{Name: "analyze", Label: "Analyze", Fields: multipartFields(
				Field{Name: "tools", Label: "Tools", Type: FieldList, Required: true,
					Options: []string{"metadata", "palette", "ocr", "faces"}},
			)},
		},
	},
}

// multipartFields prepends the binary-input fields and appends the
// download fields around the operation-specific ones.
func multipartFields(own ...Field) []Field {
	out := make([]Field, 0, len(commonBinaryFields)+len(own)+len(commonDownloadFields))
	out = append(out, commonBinaryFields...)
	out = append(out, own...)
	out = append(out, commonDownloadFields...)
	return out
}

// Schema returns the full resource/operation/field description.
func Schema() []Resource { return schema }

// LookupOperation resolves a (resource, operation) pair against the
// schema.
func LookupOperation(resource, operation string) (*Resource, *Operation, error) {
	for i := range schema {
		r := &schema[i]
		if r.Name != resource {
			continue
		}
		for j := range r.Operations {
			if r.Operations[j].Name == operation {
				return r, &r.Operations[j], nil
			}
		}
		return nil, nil, fmt.Errorf("resource %q has no operation %q", resource, operation)
	}
	return nil, nil, fmt.Errorf("unknown resource %q", resource)
}
