package httpclient

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"slices"

	"github.com/kbukum/fetchkit/hook"
)

var _ hook.Encoder = (*MultipartBody)(nil)

// MultipartBody represents a multipart/form-data request body. Fields are
// written first in sorted key order, then files in slice order.
type MultipartBody struct {
	// Fields are simple key-value form fields.
	Fields map[string]string
	// Files are file upload fields.
	Files []FileField
}

// FileField represents a file to upload in a multipart request.
type FileField struct {
	// FieldName is the form field name (e.g., "files").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type. If empty, uses application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data. The first Encode reads it into Data
	// so later encodes send the same content.
	Reader io.Reader
}

// NewFile is a shorthand for a single-file upload body.
func NewFile(fieldName, fileName, contentType string, data []byte) *MultipartBody {
	return &MultipartBody{Files: []FileField{{
		FieldName:   fieldName,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}}}
}

// AddField sets a form field and returns m for chaining.
func (m *MultipartBody) AddField(name, value string) *MultipartBody {
	if m.Fields == nil {
		m.Fields = make(map[string]string)
	}
	m.Fields[name] = value
	return m
}

// AddFile appends a file part and returns m for chaining.
func (m *MultipartBody) AddFile(f FileField) *MultipartBody {
	m.Files = append(m.Files, f)
	return m
}

// Encode builds the multipart payload and returns it with the
// content-type header value, including the boundary.
func (m *MultipartBody) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", err
		}
	}

	for i := range m.Files {
		f := &m.Files[i]
		if f.Data == nil && f.Reader != nil {
			data, err := io.ReadAll(f.Reader)
			if err != nil {
				return nil, "", err
			}
			f.Data, f.Reader = data, nil
		}

		var part io.Writer
		var err error

		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return nil, "", err
		}

		if _, err = part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
