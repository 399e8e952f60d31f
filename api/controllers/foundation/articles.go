// Package foundation holds the Imarika Foundation handlers: public articles,
// events and submissions, and the admin editors.
package foundation

import (
	"net/http"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/articles"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

func Articles(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "articles service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminCreateArticle(svc articles.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return saveArticle(svc, maxUploadBytes, logg, false)
}

func AdminUpdateArticle(svc articles.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return saveArticle(svc, maxUploadBytes, logg, true)
}

func saveArticle(svc articles.Service, maxUploadBytes int64, logg *logger.Logger, update bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "articles service unavailable"))
			return
		}

		var id int64
		if update {
			parsed, err := validators.ParsePathID(r, "articleId")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			id = parsed
		}

		if err := validators.ParseMultipart(w, r, maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		file, err := validators.FormFile(r, "file", maxUploadBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form := articles.Form{
			Title:   validators.FormValue(r, "title"),
			Content: r.FormValue("content"),
			File:    file,
		}
		if err := svc.Save(r.Context(), id, form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if update {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, map[string]string{"status": "saved"})
	}
}

func AdminDeleteArticle(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "articles service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "articleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
