// Package node is the host-facing surface of the RenderJet integration:
// a declarative field schema, a parameter dispatcher that maps configured
// field values onto typed API operations, and a binary bridge between the
// host's named byte buffers and multipart file parts. Items are processed
// sequentially, one request each, in input order.
package node

// Item is one unit of work supplied by the workflow host: a JSON document
// plus zero or more named binary buffers.
type Item struct {
	JSON   map[string]interface{}
	Binary map[string]BinaryData
}

// BinaryData is a named in-memory byte buffer attached to an item.
type BinaryData struct {
	Data     []byte
	FileName string
	MimeType string
}
