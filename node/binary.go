package node

import (
	"errors"
	"fmt"

	"github.com/renderjet/renderjet-go/client"
)

// ErrNoBinaryProperties is returned when a multipart operation is
// configured without any input binary field names.
var ErrNoBinaryProperties = errors.New("no binary properties supplied")

// collectParts resolves the configured binary property names against an
// item's buffers. A list of N names yields exactly N file parts, each
// carrying the buffer's filename and MIME type when set (the client
// synthesizes names for unnamed parts).
func collectParts(item Item, names []string) ([]client.FilePart, error) {
	if len(names) == 0 {
		return nil, ErrNoBinaryProperties
	}
	parts := make([]client.FilePart, 0, len(names))
	for _, name := range names {
		bin, ok := item.Binary[name]
		if !ok {
			return nil, fmt.Errorf("item has no binary property %q", name)
		}
		parts = append(parts, client.FilePart{
			FileName: bin.FileName,
			MimeType: bin.MimeType,
			Data:     bin.Data,
		})
	}
	return parts, nil
}

// attachDownload fetches the first result URL of resp into the item's
// binary map under the given property name.
func (n *Node) attachDownload(item *Item, resp *client.Response, property string, fetch func(string) (*client.Download, error)) error {
	u, err := resp.FirstURL()
	if err != nil {
		return err
	}
	dl, err := fetch(u)
	if err != nil {
		return err
	}
	if item.Binary == nil {
		item.Binary = map[string]BinaryData{}
	}
	item.Binary[property] = BinaryData{
		Data:     dl.Data,
		FileName: dl.FileName,
		MimeType: dl.ContentType,
	}
	return nil
}
