package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/validate"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// DecodeJSONBody decodes the request body into dest and validates its tags.
func DecodeJSONBody(r *http.Request, dest any) error {
	if err := DecodeJSON(r, dest); err != nil {
		return err
	}
	return validate.Struct(dest)
}

// DecodeLenientJSONBody is DecodeJSONBody for payloads that echo whole
// upstream records; fields dest does not declare are ignored.
func DecodeLenientJSONBody(r *http.Request, dest any) error {
	if err := decodeJSON(r, dest, false); err != nil {
		return err
	}
	return validate.Struct(dest)
}

// DecodeJSON decodes the request body into dest without tag validation, for
// payloads the service normalises before validating.
func DecodeJSON(r *http.Request, dest any) error {
	return decodeJSON(r, dest, true)
}

func decodeJSON(r *http.Request, dest any, strict bool) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}
