package cart

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kuhabites/kuha-web/api/responses"
	"github.com/kuhabites/kuha-web/api/validators"
	cartsvc "github.com/kuhabites/kuha-web/internal/cart"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
)

// Cart is the surface of the shared cart provider used by the handlers.
type Cart interface {
	AddItem(candidate cartsvc.Candidate) []cartsvc.Item
	RemoveItem(position int) bool
	RemoveItemByID(id int64) bool
	UpdateQuantity(id int64, quantity int) bool
	Clear()
	Snapshot() cartsvc.Snapshot
}

// AddItemRequest is a catalog item as shown on the menu page. Clients post
// the whole catalog record, so undeclared fields are ignored.
type AddItemRequest struct {
	ID       int64           `json:"id" validate:"required"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Category string          `json:"category"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// MutationResponse reports whether a mutation changed the cart.
type MutationResponse struct {
	Changed bool             `json:"changed"`
	Cart    cartsvc.Snapshot `json:"cart"`
}

func CartFetch(c Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		responses.WriteSuccess(w, c.Snapshot())
	}
}

// CartAddItem adds one unit of the posted item.
func CartAddItem(c Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeLenientJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.AddItem(cartsvc.Candidate{
			ID:       payload.ID,
			Name:     payload.Name,
			Price:    payload.Price,
			ImageURL: payload.ImageURL,
			Category: payload.Category,
		})
		responses.WriteSuccessStatus(w, http.StatusCreated, MutationResponse{Changed: true, Cart: c.Snapshot()})
	}
}

// CartUpdateQuantity sets the quantity of an entry; unknown ids and
// non-positive quantities leave the cart unchanged.
func CartUpdateQuantity(c Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changed := c.UpdateQuantity(id, payload.Quantity)
		responses.WriteSuccess(w, MutationResponse{Changed: changed, Cart: c.Snapshot()})
	}
}

// CartRemoveItem removes the entry at a zero-based position; out of range
// positions leave the cart unchanged.
func CartRemoveItem(c Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		position, err := validators.ParsePathIndex(r, "position")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changed := c.RemoveItem(position)
		responses.WriteSuccess(w, MutationResponse{Changed: changed, Cart: c.Snapshot()})
	}
}

// CartRemoveItemByID removes the entry with the given item id.
func CartRemoveItemByID(c Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changed := c.RemoveItemByID(id)
		responses.WriteSuccess(w, MutationResponse{Changed: changed, Cart: c.Snapshot()})
	}
}

func CartClear(c Cart, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		c.Clear()
		responses.WriteSuccess(w, MutationResponse{Changed: true, Cart: c.Snapshot()})
	}
}
