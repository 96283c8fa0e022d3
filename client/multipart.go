package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// FilePart is one named byte buffer destined for a multipart file field.
type FilePart struct {
	FileName string
	MimeType string
	Data     []byte
}

// encodeMultipart builds a multipart/form-data body: all string fields
// first (in sorted order, for reproducible requests), then one file part
// per FilePart under the shared fileField name. Parts without a filename
// get a synthesized one; parts without a MIME type fall back to
// application/octet-stream.
func encodeMultipart(fileField string, fields map[string]string, files []FilePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		name := f.FileName
		if name == "" {
			name = "file-" + uuid.NewString()
		}
		mimeType := f.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, name))
		h.Set("Content-Type", mimeType)

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := pw.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// ------------------------------
// Field serialization helpers
// ------------------------------

// setString adds k unless the value is empty.
func setString(m map[string]string, k, v string) {
	if v != "" {
		m[k] = v
	}
}

// setInt adds k unless the value equals its zero default; the API treats
// absent numeric fields as "use the default".
func setInt(m map[string]string, k string, v int) {
	if v != 0 {
		m[k] = strconv.Itoa(v)
	}
}

// setBool always adds k; the API expects boolean flags as the literal
// strings "true"/"false".
func setBool(m map[string]string, k string, v bool) {
	m[k] = strconv.FormatBool(v)
}
