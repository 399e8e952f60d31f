package foundation

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kuhabites/kuha-web/internal/articles"
	"github.com/kuhabites/kuha-web/internal/events"
	"github.com/kuhabites/kuha-web/internal/involvement"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/imarika"
)

type stubEvents struct {
	when    events.When
	list    []imarika.Event
	savedID int64
	form    events.Form
	err     error
}

func (s *stubEvents) List(ctx context.Context, when events.When) ([]imarika.Event, error) {
	s.when = when
	return s.list, s.err
}

func (s *stubEvents) Save(ctx context.Context, id int64, form events.Form) error {
	s.savedID, s.form = id, form
	return s.err
}

func (s *stubEvents) Delete(ctx context.Context, id int64) error {
	s.savedID = id
	return s.err
}

type stubArticles struct {
	savedID int64
	form    articles.Form
}

func (s *stubArticles) List(ctx context.Context) ([]imarika.Article, error) {
	return []imarika.Article{{ID: 1, Title: "Clean water"}}, nil
}

func (s *stubArticles) Save(ctx context.Context, id int64, form articles.Form) error {
	s.savedID, s.form = id, form
	return nil
}

func (s *stubArticles) Delete(ctx context.Context, id int64) error { return nil }

type stubInvolvement struct {
	sub involvement.Submission
	err error
}

func (s *stubInvolvement) Submit(ctx context.Context, sub involvement.Submission) (*involvement.Receipt, error) {
	s.sub = sub
	if s.err != nil {
		return nil, s.err
	}
	return &involvement.Receipt{Message: "Submission successful!"}, nil
}

func (s *stubInvolvement) Partner(ctx context.Context, form involvement.PartnerForm) (*involvement.Receipt, error) {
	return &involvement.Receipt{Message: "Thank you for partnering with us!"}, nil
}

func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestEventsParsesWhen(t *testing.T) {
	svc := &stubEvents{list: []imarika.Event{{ID: 1}, {ID: 2}}}

	resp := httptest.NewRecorder()
	Events(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/events?when=ALL", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.when != events.WhenAll {
		t.Fatalf("expected all got %s", svc.when)
	}

	resp = httptest.NewRecorder()
	Events(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/events?when=someday", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestEventsPropagatesUpstreamFailure(t *testing.T) {
	svc := &stubEvents{err: pkgerrors.New(pkgerrors.CodeDependency, "foundation unavailable")}
	resp := httptest.NewRecorder()
	Events(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/events", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestAdminUpdateEventMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", " Tree planting ")
	_ = mw.WriteField("event_date", "2025-06-01")
	_ = mw.WriteField("location", "Kitui")
	part, err := mw.CreateFormFile("images", "cover.gif")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte("GIF89a"))
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = withParam(req, "eventId", "12")

	svc := &stubEvents{}
	resp := httptest.NewRecorder()
	AdminUpdateEvent(svc, 1<<20, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.savedID != 12 {
		t.Fatalf("expected id 12 got %d", svc.savedID)
	}
	if svc.form.Title != "Tree planting" || len(svc.form.Images) != 1 {
		t.Fatalf("unexpected form %+v", svc.form)
	}
}

func TestAdminCreateArticleWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", "Clean water")
	_ = mw.WriteField("content", "<p>Boreholes</p>")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	svc := &stubArticles{}
	resp := httptest.NewRecorder()
	AdminCreateArticle(svc, 1<<20, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.savedID != 0 || svc.form.File != nil || svc.form.Content != "<p>Boreholes</p>" {
		t.Fatalf("unexpected save %d %+v", svc.savedID, svc.form)
	}
}

func TestSubmitTakesFormTypeFromRoute(t *testing.T) {
	svc := &stubInvolvement{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"full_name":"Otieno","email":"o@example.org","mpesa_code":"qx12"}`))
	req = withParam(req, "formType", "Donate")

	resp := httptest.NewRecorder()
	Submit(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.sub.FormType != "Donate" || svc.sub.MpesaCode != "qx12" {
		t.Fatalf("unexpected submission %+v", svc.sub)
	}

	var envelope struct {
		Data involvement.Receipt `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Message != "Submission successful!" {
		t.Fatalf("unexpected receipt %q", envelope.Data.Message)
	}
}

func TestSubmitValidationError(t *testing.T) {
	svc := &stubInvolvement{err: pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"email": "must be a valid email"})}
	req := withParam(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"full_name":"A","email":"nope"}`)), "formType", "volunteer")

	resp := httptest.NewRecorder()
	Submit(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestArticlesList(t *testing.T) {
	resp := httptest.NewRecorder()
	Articles(&stubArticles{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Clean water") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
