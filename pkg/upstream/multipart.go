package upstream

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

// File is an attachment forwarded to a backend.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Form is an ordered multipart/form-data payload.
type Form struct {
	fields []formField
	files  []File
}

type formField struct {
	name  string
	value string
}

// Set appends a text field. Repeated names are sent as repeated parts.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// Attach appends a file part.
func (f *Form) Attach(file File) *Form {
	f.files = append(f.files, file)
	return f
}

// Fields returns the text fields in insertion order, for inspection in tests.
func (f *Form) Fields() map[string][]string {
	out := make(map[string][]string, len(f.fields))
	for _, field := range f.fields {
		out[field.name] = append(out[field.name], field.value)
	}
	return out
}

func (f *Form) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.name, err)
		}
	}
	for _, file := range f.files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}
