package validators

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
)

type loginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","password":"b"}`))
	var body loginBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, loginBody{Username: "a", Password: "b"}, body)
}

func TestDecodeJSONBodyValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a"}`))
	var body loginBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"password": "is required"}, pkgerrors.As(err).Details())
}

func TestDecodeJSONRejectsUnknownAndEmpty(t *testing.T) {
	var body loginBody
	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user":"a"}`)), &body)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``)), &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())
}

func TestDecodeLenientJSONBodyIgnoresUnknown(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","password":"b","remember":true}`))
	var body loginBody
	require.NoError(t, DecodeLenientJSONBody(req, &body))
	assert.Equal(t, loginBody{Username: "a", Password: "b"}, body)

	var partial loginBody
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","extra":1}`))
	err := DecodeLenientJSONBody(req, &partial)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?qty=3&bad=x&big=99", nil)

	v, err := ParseQueryInt(req, "qty", 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = ParseQueryInt(req, "missing", 7, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = ParseQueryInt(req, "bad", 1, 1, 10)
	assert.Error(t, err)
	_, err = ParseQueryInt(req, "big", 1, 1, 10)
	assert.Error(t, err)
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParsePathParams(t *testing.T) {
	req := withRouteParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42")
	id, err := ParsePathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParsePathID(withRouteParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "0"), "id")
	assert.Error(t, err)

	pos, err := ParsePathIndex(withRouteParam(httptest.NewRequest(http.MethodGet, "/", nil), "position", "-1"), "position")
	require.NoError(t, err)
	assert.Equal(t, -1, pos)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "chips", SanitizeString("  chips  ", 0))
	assert.Equal(t, "chi", SanitizeString("chips", 3))
}

func TestMultipartHelpers(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "  Pilau "))
	part, err := mw.CreateFormFile("images", "a.gif")
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a"))
	require.NoError(t, err)
	part, err = mw.CreateFormFile("images", "b.gif")
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, ParseMultipart(httptest.NewRecorder(), req, 1<<20))

	assert.Equal(t, "Pilau", FormValue(req, "name"))

	files, err := FormFiles(req, "images", 1<<20)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "b.gif", files[1].Filename)

	missing, err := FormFile(req, "image", 1<<20)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
