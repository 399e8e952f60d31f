// Package menu is the storefront admin's menu item management.
package menu

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kuhabites/kuha-web/internal/catalog"
	"github.com/kuhabites/kuha-web/internal/upload"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
	"github.com/kuhabites/kuha-web/pkg/upstream"
)

type Backend interface {
	ListMenuItems(ctx context.Context, restaurantID int64) ([]kuha.MenuItem, error)
	CreateMenuItem(ctx context.Context, form kuha.MenuItemForm) error
	UpdateMenuItem(ctx context.Context, id int64, form kuha.MenuItemForm) error
	DeleteMenuItem(ctx context.Context, id int64) error
}

// ItemForm is the admin create/update form.
type ItemForm struct {
	Name       string
	Price      decimal.Decimal
	CategoryID int64
	Image      *upstream.File
}

func (f ItemForm) validate() error {
	details := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		details["name"] = "is required"
	}
	if f.Price.IsNegative() {
		details["price"] = "must not be negative"
	}
	if f.CategoryID <= 0 {
		details["category"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

type Service interface {
	Items(ctx context.Context, restaurantID int64, search string) ([]kuha.MenuItem, error)
	Create(ctx context.Context, form ItemForm) error
	Update(ctx context.Context, id int64, form ItemForm) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	backend Backend
	images  upload.Policy
}

func NewService(backend Backend, maxUploadBytes int64) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront backend is required")
	}
	return &service{backend: backend, images: upload.ImagePolicy(maxUploadBytes)}, nil
}

// Items lists a restaurant's menu, narrowed by a case-insensitive name search.
func (s *service) Items(ctx context.Context, restaurantID int64, search string) ([]kuha.MenuItem, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id must be positive")
	}
	items, err := s.backend.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return catalog.FilterItems(items, catalog.MenuFilter{Search: search}), nil
}

func (s *service) Create(ctx context.Context, form ItemForm) error {
	payload, err := s.prepare(form)
	if err != nil {
		return err
	}
	return s.backend.CreateMenuItem(ctx, payload)
}

func (s *service) Update(ctx context.Context, id int64, form ItemForm) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "menu item id must be positive")
	}
	payload, err := s.prepare(form)
	if err != nil {
		return err
	}
	return s.backend.UpdateMenuItem(ctx, id, payload)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "menu item id must be positive")
	}
	return s.backend.DeleteMenuItem(ctx, id)
}

func (s *service) prepare(form ItemForm) (kuha.MenuItemForm, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := form.validate(); err != nil {
		return kuha.MenuItemForm{}, err
	}
	if err := s.images.Check(form.Image); err != nil {
		return kuha.MenuItemForm{}, err
	}
	return kuha.MenuItemForm{
		Name:       form.Name,
		Price:      form.Price,
		CategoryID: form.CategoryID,
		Image:      form.Image,
	}, nil
}
