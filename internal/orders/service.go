// Package orders is the storefront admin view of placed orders.
package orders

import (
	"context"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
)

type Backend interface {
	ListOrders(ctx context.Context) ([]kuha.Order, error)
	CompleteOrder(ctx context.Context, id int64) error
	DeleteOrder(ctx context.Context, id int64) error
}

// Summary counts orders by fulfilment state.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Board is the order list together with its summary.
type Board struct {
	Orders  []kuha.Order `json:"orders"`
	Summary Summary      `json:"summary"`
}

type Service interface {
	List(ctx context.Context) (*Board, error)
	MarkCompleted(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	backend Backend
}

func NewService(backend Backend) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront backend is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) List(ctx context.Context) (*Board, error) {
	orders, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []kuha.Order{}
	}
	return &Board{Orders: orders, Summary: Summarize(orders)}, nil
}

func (s *service) MarkCompleted(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	return s.backend.CompleteOrder(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	return s.backend.DeleteOrder(ctx, id)
}

func Summarize(orders []kuha.Order) Summary {
	sum := Summary{Total: len(orders)}
	for _, o := range orders {
		if o.Completed {
			sum.Completed++
		} else {
			sum.Pending++
		}
	}
	return sum
}
