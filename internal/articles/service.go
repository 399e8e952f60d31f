// Package articles lists and manages foundation articles.
package articles

import (
	"context"
	"strings"

	"github.com/kuhabites/kuha-web/internal/upload"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/imarika"
	"github.com/kuhabites/kuha-web/pkg/upstream"
)

type Backend interface {
	ListArticles(ctx context.Context) ([]imarika.Article, error)
	CreateArticle(ctx context.Context, bearer string, form imarika.ArticleForm) error
	UpdateArticle(ctx context.Context, bearer string, id int64, form imarika.ArticleForm) error
	DeleteArticle(ctx context.Context, bearer string, id int64) error
}

// TokenSource yields the stored foundation access token, or "".
type TokenSource interface {
	AccessToken() string
}

// Form is the article editor payload. Content is rich-text HTML.
type Form struct {
	Title   string
	Content string
	File    *upstream.File
}

type Service interface {
	List(ctx context.Context) ([]imarika.Article, error)
	// Save creates the article when id is zero and updates it otherwise.
	Save(ctx context.Context, id int64, form Form) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	backend Backend
	tokens  TokenSource
	files   upload.Policy
}

func NewService(backend Backend, tokens TokenSource, maxUploadBytes int64) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "foundation backend is required")
	}
	if tokens == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token source is required")
	}
	return &service{backend: backend, tokens: tokens, files: upload.DocumentPolicy(maxUploadBytes)}, nil
}

func (s *service) List(ctx context.Context) ([]imarika.Article, error) {
	articles, err := s.backend.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []imarika.Article{}
	}
	return articles, nil
}

func (s *service) Save(ctx context.Context, id int64, form Form) error {
	if id < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "article id must not be negative")
	}
	form.Title = strings.TrimSpace(form.Title)
	details := map[string]string{}
	if form.Title == "" {
		details["title"] = "is required"
	}
	if strings.TrimSpace(form.Content) == "" {
		details["content"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	if err := s.files.Check(form.File); err != nil {
		return err
	}

	payload := imarika.ArticleForm{Title: form.Title, Content: form.Content, File: form.File}
	if id == 0 {
		return s.backend.CreateArticle(ctx, s.tokens.AccessToken(), payload)
	}
	return s.backend.UpdateArticle(ctx, s.tokens.AccessToken(), id, payload)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "article id must be positive")
	}
	return s.backend.DeleteArticle(ctx, s.tokens.AccessToken(), id)
}
