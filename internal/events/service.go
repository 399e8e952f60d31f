// Package events serves the foundation's upcoming and past events and the
// admin event editor.
package events

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kuhabites/kuha-web/internal/upload"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/imarika"
	"github.com/kuhabites/kuha-web/pkg/upstream"
)

// When selects which events to list.
type When string

const (
	WhenUpcoming When = "upcoming"
	WhenPast     When = "past"
	WhenAll      When = "all"
)

// ParseWhen maps a query value onto When; empty means upcoming.
func ParseWhen(raw string) (When, error) {
	switch When(strings.ToLower(strings.TrimSpace(raw))) {
	case "", WhenUpcoming:
		return WhenUpcoming, nil
	case WhenPast:
		return WhenPast, nil
	case WhenAll:
		return WhenAll, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "when must be one of upcoming, past, all").
		WithDetails(map[string]any{"when": raw})
}

type Backend interface {
	UpcomingEvents(ctx context.Context) ([]imarika.Event, error)
	PastEvents(ctx context.Context) ([]imarika.Event, error)
	CreateEvent(ctx context.Context, bearer string, form imarika.EventForm) error
	UpdateEvent(ctx context.Context, bearer string, id int64, form imarika.EventForm) error
	DeleteEvent(ctx context.Context, bearer string, id int64) error
}

type TokenSource interface {
	AccessToken() string
}

// Form is the event editor payload. Dates and times are passed through in
// the backend's YYYY-MM-DD / HH:MM formats.
type Form struct {
	Title       string
	Description string
	EventDate   string
	StartTime   string
	EndTime     string
	Location    string
	Images      []upstream.File
}

type Service interface {
	List(ctx context.Context, when When) ([]imarika.Event, error)
	Save(ctx context.Context, id int64, form Form) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	backend Backend
	tokens  TokenSource
	images  upload.Policy
}

func NewService(backend Backend, tokens TokenSource, maxUploadBytes int64) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "foundation backend is required")
	}
	if tokens == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token source is required")
	}
	return &service{backend: backend, tokens: tokens, images: upload.ImagePolicy(maxUploadBytes)}, nil
}

func (s *service) List(ctx context.Context, when When) ([]imarika.Event, error) {
	var (
		events []imarika.Event
		err    error
	)
	switch when {
	case WhenUpcoming, "":
		events, err = s.backend.UpcomingEvents(ctx)
	case WhenPast:
		events, err = s.backend.PastEvents(ctx)
	case WhenAll:
		events, err = s.all(ctx)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown event listing").WithDetails(map[string]any{"when": when})
	}
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []imarika.Event{}
	}
	return events, nil
}

// all fetches both listings concurrently and returns upcoming followed by
// past. Either failure fails the whole call.
func (s *service) all(ctx context.Context) ([]imarika.Event, error) {
	var upcoming, past []imarika.Event
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		upcoming, err = s.backend.UpcomingEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		past, err = s.backend.PastEvents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]imarika.Event, 0, len(upcoming)+len(past))
	out = append(out, upcoming...)
	return append(out, past...), nil
}

func (s *service) Save(ctx context.Context, id int64, form Form) error {
	if id < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id must not be negative")
	}
	form.Title = strings.TrimSpace(form.Title)
	form.EventDate = strings.TrimSpace(form.EventDate)
	form.Location = strings.TrimSpace(form.Location)

	details := map[string]string{}
	if form.Title == "" {
		details["title"] = "is required"
	}
	if form.EventDate == "" {
		details["event_date"] = "is required"
	}
	if form.Location == "" {
		details["location"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	if err := s.images.CheckAll(form.Images); err != nil {
		return err
	}

	payload := imarika.EventForm{
		Title:       form.Title,
		Description: form.Description,
		EventDate:   form.EventDate,
		StartTime:   strings.TrimSpace(form.StartTime),
		EndTime:     strings.TrimSpace(form.EndTime),
		Location:    form.Location,
		Images:      form.Images,
	}
	if id == 0 {
		return s.backend.CreateEvent(ctx, s.tokens.AccessToken(), payload)
	}
	return s.backend.UpdateEvent(ctx, s.tokens.AccessToken(), id, payload)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id must be positive")
	}
	return s.backend.DeleteEvent(ctx, s.tokens.AccessToken(), id)
}
