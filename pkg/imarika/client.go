// Package imarika is the client for the Imarika Foundation backends: the
// content API (articles, events, token auth) and the submissions API.
package imarika

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kuhabites/kuha-web/pkg/upstream"
)

const (
	BackendName           = "foundation"
	SubmissionBackendName = "foundation_submissions"
)

type Client struct {
	api    *upstream.Client
	submit *upstream.Client
}

func NewClient(baseURL, submitBaseURL string, opts ...upstream.Option) (*Client, error) {
	api, err := upstream.New(BackendName, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	submit, err := upstream.New(SubmissionBackendName, submitBaseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, submit: submit}, nil
}

// ArticleForm is the multipart payload for article create/update.
type ArticleForm struct {
	Title   string
	Content string
	File    *upstream.File
}

func (f ArticleForm) multipart() *upstream.Form {
	form := (&upstream.Form{}).Set("title", f.Title).Set("content", f.Content)
	if f.File != nil {
		file := *f.File
		file.Field = "file"
		form.Attach(file)
	}
	return form
}

// EventForm is the multipart payload for event create/update.
type EventForm struct {
	Title       string
	Description string
	EventDate   string
	StartTime   string
	EndTime     string
	Location    string
	Images      []upstream.File
}

func (f EventForm) multipart() *upstream.Form {
	form := (&upstream.Form{}).
		Set("title", f.Title).
		Set("description", f.Description).
		Set("event_date", f.EventDate).
		Set("start_time", f.StartTime).
		Set("end_time", f.EndTime).
		Set("location", f.Location)
	for _, img := range f.Images {
		img.Field = "images"
		form.Attach(img)
	}
	return form
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var page ArticlePage
	err := c.api.Do(ctx, upstream.Request{
		Operation: "list_articles",
		Method:    http.MethodGet,
		Path:      "/api/articles/",
	}, &page)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) CreateArticle(ctx context.Context, bearer string, form ArticleForm) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "create_article",
		Method:    http.MethodPost,
		Path:      "/api/articles/",
		Multipart: form.multipart(),
		Bearer:    bearer,
	}, nil)
}

func (c *Client) UpdateArticle(ctx context.Context, bearer string, id int64, form ArticleForm) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "update_article",
		Method:    http.MethodPut,
		Path:      fmt.Sprintf("/api/articles/%d/", id),
		Multipart: form.multipart(),
		Bearer:    bearer,
	}, nil)
}

func (c *Client) DeleteArticle(ctx context.Context, bearer string, id int64) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "delete_article",
		Method:    http.MethodDelete,
		Path:      fmt.Sprintf("/api/articles/%d/", id),
		Bearer:    bearer,
	}, nil)
}

func (c *Client) UpcomingEvents(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "list_upcoming_events", "/api/events/upcoming/")
}

func (c *Client) PastEvents(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "list_past_events", "/api/events/past/")
}

func (c *Client) listEvents(ctx context.Context, operation, path string) ([]Event, error) {
	var out []Event
	err := c.api.Do(ctx, upstream.Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      path,
	}, &out)
	return out, err
}

func (c *Client) CreateEvent(ctx context.Context, bearer string, form EventForm) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "create_event",
		Method:    http.MethodPost,
		Path:      "/api/events/create-with-images/",
		Multipart: form.multipart(),
		Bearer:    bearer,
	}, nil)
}

func (c *Client) UpdateEvent(ctx context.Context, bearer string, id int64, form EventForm) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "update_event",
		Method:    http.MethodPut,
		Path:      fmt.Sprintf("/api/events/%d/", id),
		Multipart: form.multipart(),
		Bearer:    bearer,
	}, nil)
}

func (c *Client) DeleteEvent(ctx context.Context, bearer string, id int64) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "delete_event",
		Method:    http.MethodDelete,
		Path:      fmt.Sprintf("/api/events/%d/", id),
		Bearer:    bearer,
	}, nil)
}

// Token exchanges credentials for an access/refresh pair.
func (c *Client) Token(ctx context.Context, username, password string) (*TokenPair, error) {
	var out TokenPair
	err := c.api.Do(ctx, upstream.Request{
		Operation: "token",
		Method:    http.MethodPost,
		Path:      "/api/token/",
		Body:      Credentials{Username: username, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IsSuperuser(ctx context.Context, access string) (bool, error) {
	var out SuperuserStatus
	err := c.api.Do(ctx, upstream.Request{
		Operation: "is_superuser",
		Method:    http.MethodGet,
		Path:      "/api/is-superuser/",
		Bearer:    access,
	}, &out)
	return out.IsSuperuser, err
}

// Submit posts a get-involved form to the submissions API under its
// lower-cased form type.
func (c *Client) Submit(ctx context.Context, sub Submission) (*SubmissionReceipt, error) {
	formType := strings.ToLower(strings.TrimSpace(sub.FormType))
	sub.FormType = formType

	var out SubmissionReceipt
	err := c.submit.Do(ctx, upstream.Request{
		Operation: "submit_" + formType,
		Method:    http.MethodPost,
		Path:      fmt.Sprintf("/api/submit/%s/", formType),
		Body:      sub,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitPartner(ctx context.Context, form PartnerForm) error {
	return c.submit.Do(ctx, upstream.Request{
		Operation: "submit_partner_form",
		Method:    http.MethodPost,
		Path:      "/submit/partner/",
		Body:      form,
	}, nil)
}
