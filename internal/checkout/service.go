// Package checkout turns the current cart into a storefront order.
package checkout

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kuhabites/kuha-web/internal/cart"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
	"github.com/kuhabites/kuha-web/pkg/validate"
)

// Cart is the subset of the cart provider checkout needs.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear()
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order kuha.OrderRequest) error
}

// CustomerDetails are collected by the checkout form. Notes are optional.
type CustomerDetails struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Notes   string `json:"notes"`
}

func (d CustomerDetails) normalized() CustomerDetails {
	return CustomerDetails{
		Name:    strings.TrimSpace(d.Name),
		Phone:   strings.TrimSpace(d.Phone),
		Address: strings.TrimSpace(d.Address),
		Notes:   strings.TrimSpace(d.Notes),
	}
}

// Confirmation summarises a placed order.
type Confirmation struct {
	CustomerName string          `json:"customer_name"`
	ItemCount    int             `json:"item_count"`
	Total        decimal.Decimal `json:"total"`
}

type Service interface {
	Submit(ctx context.Context, details CustomerDetails) (*Confirmation, error)
}

type service struct {
	cart    Cart
	backend OrderSubmitter
}

func NewService(c Cart, backend OrderSubmitter) (Service, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is required")
	}
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront backend is required")
	}
	return &service{cart: c, backend: backend}, nil
}

// Submit posts the cart snapshot as an order and clears the cart once the
// backend accepts it. A rejected order leaves the cart as it was.
func (s *service) Submit(ctx context.Context, details CustomerDetails) (*Confirmation, error) {
	details = details.normalized()
	if err := validate.Struct(details); err != nil {
		return nil, err
	}

	snap := s.cart.Snapshot()
	if len(snap.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := s.backend.SubmitOrder(ctx, BuildOrder(details, snap.Items)); err != nil {
		return nil, err
	}
	s.cart.Clear()

	return &Confirmation{
		CustomerName: details.Name,
		ItemCount:    snap.Count,
		Total:        snap.Total,
	}, nil
}

// BuildOrder maps customer details and cart entries onto the order payload.
func BuildOrder(details CustomerDetails, items []cart.Item) kuha.OrderRequest {
	lines := make([]kuha.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, kuha.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
		})
	}
	return kuha.OrderRequest{
		Name:    details.Name,
		Phone:   details.Phone,
		Address: details.Address,
		Notes:   details.Notes,
		Items:   lines,
	}
}
