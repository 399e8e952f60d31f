package validators

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kuhabites/kuha-web/internal/upload"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/upstream"
)

// multipartMemory is how much of a form is held in memory before spilling
// attachments to temp files.
const multipartMemory = 8 << 20

// ParseMultipart parses a multipart form, capping the whole body at
// maxBytes plus a little room for the text fields.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes*4+(1<<20))
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pkgerrors.Wrap(pkgerrors.CodeTooLarge, err, "request body too large")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// FormValue returns the trimmed text field.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormFile reads an optional attachment. A missing field yields nil.
func FormFile(r *http.Request, field string, maxBytes int64) (*upstream.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	return upload.FromHeader(field, headers[0], maxBytes)
}

// FormFiles reads every attachment posted under field.
func FormFiles(r *http.Request, field string, maxBytes int64) ([]upstream.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var files []upstream.File
	for _, header := range r.MultipartForm.File[field] {
		file, err := upload.FromHeader(field, header, maxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}
	return files, nil
}
