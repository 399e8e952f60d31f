package foundation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/involvement"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// submissionRequest is the get-involved modal body; the form type comes
// from the route.
type submissionRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	MpesaCode string `json:"mpesa_code"`
}

// Submit forwards a volunteer, donate, partner or sponsor form.
func Submit(svc involvement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submissions service unavailable"))
			return
		}

		var req submissionRequest
		if err := validators.DecodeJSON(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Submit(r.Context(), involvement.Submission{
			FormType:  chi.URLParam(r, "formType"),
			FullName:  req.FullName,
			Email:     req.Email,
			Message:   req.Message,
			MpesaCode: req.MpesaCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

func Partner(svc involvement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submissions service unavailable"))
			return
		}

		var form involvement.PartnerForm
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Partner(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
