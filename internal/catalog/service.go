// Package catalog serves restaurants and their filterable menus.
package catalog

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
)

// AllCategories is the catch-all category label that disables filtering.
const AllCategories = "All"

// Backend is the storefront surface the catalog reads from.
type Backend interface {
	ListRestaurants(ctx context.Context) ([]kuha.Restaurant, error)
	ListCategories(ctx context.Context, restaurantID int64) ([]kuha.Category, error)
	ListMenuItems(ctx context.Context, restaurantID int64) ([]kuha.MenuItem, error)
}

// MenuFilter narrows a menu by name substring and category.
type MenuFilter struct {
	Search   string
	Category string
}

// Menu is one restaurant's menu after filtering.
type Menu struct {
	RestaurantID int64           `json:"restaurant_id"`
	Categories   []string        `json:"categories"`
	Items        []kuha.MenuItem `json:"items"`
}

type Service interface {
	Restaurants(ctx context.Context) ([]kuha.Restaurant, error)
	Menu(ctx context.Context, restaurantID int64, filter MenuFilter) (*Menu, error)
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

func (s *service) Restaurants(ctx context.Context) ([]kuha.Restaurant, error) {
	restaurants, err := s.backend.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []kuha.Restaurant{}
	}
	return restaurants, nil
}

// Menu loads categories and items concurrently; both must succeed.
func (s *service) Menu(ctx context.Context, restaurantID int64, filter MenuFilter) (*Menu, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id must be positive")
	}

	var (
		categories []kuha.Category
		items      []kuha.MenuItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.backend.ListCategories(gctx, restaurantID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.backend.ListMenuItems(gctx, restaurantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories)+1)
	names = append(names, AllCategories)
	for _, c := range categories {
		names = append(names, c.Name)
	}

	return &Menu{
		RestaurantID: restaurantID,
		Categories:   names,
		Items:        FilterItems(items, filter),
	}, nil
}

// FilterItems keeps items whose name contains Search (case-insensitive) and
// whose category equals Category. An empty or "All" category matches any.
func FilterItems(items []kuha.MenuItem, filter MenuFilter) []kuha.MenuItem {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	anyCategory := category == "" || strings.EqualFold(category, AllCategories)

	out := make([]kuha.MenuItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if !anyCategory && item.Category.String() != category {
			continue
		}
		out = append(out, item)
	}
	return out
}
