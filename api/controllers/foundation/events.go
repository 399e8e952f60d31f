package foundation

import (
	"net/http"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/events"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// Events lists events selected by ?when=upcoming|past|all (default upcoming).
func Events(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		when, err := events.ParseWhen(r.URL.Query().Get("when"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), when)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminCreateEvent(svc events.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return saveEvent(svc, maxUploadBytes, logg, false)
}

func AdminUpdateEvent(svc events.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return saveEvent(svc, maxUploadBytes, logg, true)
}

func saveEvent(svc events.Service, maxUploadBytes int64, logg *logger.Logger, update bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		var id int64
		if update {
			parsed, err := validators.ParsePathID(r, "eventId")
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
		images, err := validators.FormFiles(r, "images", maxUploadBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form := events.Form{
			Title:       validators.FormValue(r, "title"),
			Description: r.FormValue("description"),
			EventDate:   validators.FormValue(r, "event_date"),
			StartTime:   validators.FormValue(r, "start_time"),
			EndTime:     validators.FormValue(r, "end_time"),
			Location:    validators.FormValue(r, "location"),
			Images:      images,
		}
		if err := svc.Save(r.Context(), id, form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if update {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, map[string]any{"status": "saved", "images": len(images)})
	}
}

func AdminDeleteEvent(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "eventId")
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
