// Package upload reads admin file attachments and checks them before they
// are forwarded to a backend.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/upstream"
)

// Policy bounds what an attachment may be.
type Policy struct {
	MaxBytes int64
	// Allowed mime prefixes, e.g. "image/". Empty allows any type.
	Allowed []string
}

// ImagePolicy accepts images up to maxBytes.
func ImagePolicy(maxBytes int64) Policy {
	return Policy{MaxBytes: maxBytes, Allowed: []string{"image/"}}
}

// DocumentPolicy accepts images, PDFs and office documents up to maxBytes.
func DocumentPolicy(maxBytes int64) Policy {
	return Policy{MaxBytes: maxBytes, Allowed: []string{
		"image/",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument",
		"application/zip",
		"text/plain",
	}}
}

// Check sniffs the content of file and rejects it when it is too large or of
// a disallowed type. The detected mime type replaces whatever the client sent.
func (p Policy) Check(file *upstream.File) error {
	if file == nil {
		return nil
	}
	if len(file.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "attachment is empty").
			WithDetails(map[string]any{"filename": file.Filename})
	}
	if p.MaxBytes > 0 && int64(len(file.Data)) > p.MaxBytes {
		return pkgerrors.New(pkgerrors.CodeTooLarge, "attachment exceeds upload limit").
			WithDetails(map[string]any{"filename": file.Filename, "max_bytes": p.MaxBytes})
	}

	detected := mimetype.Detect(file.Data)
	if !p.allows(detected) {
		return pkgerrors.New(pkgerrors.CodeValidation, "attachment type not allowed").
			WithDetails(map[string]any{"filename": file.Filename, "content_type": detected.String()})
	}
	file.ContentType = detected.String()
	return nil
}

// CheckAll applies Check to each file in place.
func (p Policy) CheckAll(files []upstream.File) error {
	for i := range files {
		if err := p.Check(&files[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p Policy) allows(detected *mimetype.MIME) bool {
	if len(p.Allowed) == 0 {
		return true
	}
	for m := detected; m != nil; m = m.Parent() {
		for _, prefix := range p.Allowed {
			if strings.HasPrefix(m.String(), prefix) {
				return true
			}
		}
	}
	return false
}

// FromHeader reads a multipart file header into a File bound to field,
// refusing to read more than maxBytes+1 bytes.
func FromHeader(field string, header *multipart.FileHeader, maxBytes int64) (*upstream.File, error) {
	if header == nil {
		return nil, nil
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeTooLarge, "attachment exceeds upload limit").
			WithDetails(map[string]any{"filename": header.Filename, "max_bytes": maxBytes})
	}
	f, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open attachment")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("read attachment %s", header.Filename))
	}
	return &upstream.File{
		Field:       field,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
