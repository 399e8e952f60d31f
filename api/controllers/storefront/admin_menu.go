package storefront

import (
	"math"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	"github.com/kuhabites/kuha-web/internal/menu"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// AdminMenuItems lists a restaurant's items for the dashboard, filtered by q.
func AdminMenuItems(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		restaurantID, err := validators.ParseQueryInt(r, "restaurant_id", 0, 1, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if restaurantID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "restaurant_id is required"))
			return
		}

		items, err := svc.Items(r.Context(), int64(restaurantID), validators.ParseQueryString(r, "q", maxSearchLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminCreateMenuItem(svc menu.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		form, err := parseItemForm(w, r, maxUploadBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Create(r.Context(), form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "created"})
	}
}

func AdminUpdateMenuItem(svc menu.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		form, err := parseItemForm(w, r, maxUploadBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Update(r.Context(), id, form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func AdminDeleteMenuItem(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "itemId")
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

// parseItemForm reads the dashboard's multipart menu item form. Malformed
// numbers are reported per field; range checks belong to the service.
func parseItemForm(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (menu.ItemForm, error) {
	if err := validators.ParseMultipart(w, r, maxUploadBytes); err != nil {
		return menu.ItemForm{}, err
	}

	details := map[string]string{}
	form := menu.ItemForm{Name: validators.FormValue(r, "name")}

	if raw := validators.FormValue(r, "price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			details["price"] = "must be a number"
		}
		form.Price = price
	} else {
		details["price"] = "is required"
	}

	if raw := validators.FormValue(r, "category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			details["category"] = "must be a category id"
		}
		form.CategoryID = categoryID
	}

	if len(details) > 0 {
		return menu.ItemForm{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	image, err := validators.FormFile(r, "image", maxUploadBytes)
	if err != nil {
		return menu.ItemForm{}, err
	}
	form.Image = image
	return form, nil
}
