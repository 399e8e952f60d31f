package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
)

type stubBackend struct {
	restaurants   []kuha.Restaurant
	categories    []kuha.Category
	items         []kuha.MenuItem
	categoriesErr error
	itemsErr      error
}

func (s *stubBackend) ListRestaurants(ctx context.Context) ([]kuha.Restaurant, error) {
	return s.restaurants, nil
}

func (s *stubBackend) ListCategories(ctx context.Context, restaurantID int64) ([]kuha.Category, error) {
	return s.categories, s.categoriesErr
}

func (s *stubBackend) ListMenuItems(ctx context.Context, restaurantID int64) ([]kuha.MenuItem, error) {
	return s.items, s.itemsErr
}

func menuFixture() []kuha.MenuItem {
	return []kuha.MenuItem{
		{ID: 1, Name: "Masala Chips", Price: decimal.NewFromInt(150), Category: "Snacks"},
		{ID: 2, Name: "Beef Pilau", Price: decimal.NewFromInt(400), Category: "Mains"},
		{ID: 3, Name: "Chips Mayai", Price: decimal.NewFromInt(200), Category: "Mains"},
	}
}

func ids(items []kuha.MenuItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFilterItems(t *testing.T) {
	tests := []struct {
		name   string
		filter MenuFilter
		want   []int64
	}{
		{name: "no filter", want: []int64{1, 2, 3}},
		{name: "all category", filter: MenuFilter{Category: "All"}, want: []int64{1, 2, 3}},
		{name: "search is case-insensitive", filter: MenuFilter{Search: "CHIPS"}, want: []int64{1, 3}},
		{name: "category only", filter: MenuFilter{Category: "Mains"}, want: []int64{2, 3}},
		{name: "search and category", filter: MenuFilter{Search: "chips", Category: "Mains"}, want: []int64{3}},
		{name: "nothing matches", filter: MenuFilter{Search: "ugali"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterItems(menuFixture(), tt.filter)))
		})
	}
}

func TestMenuPrefixesAllCategory(t *testing.T) {
	svc, err := NewService(&stubBackend{
		categories: []kuha.Category{{ID: 1, Name: "Snacks"}, {ID: 2, Name: "Mains"}},
		items:      menuFixture(),
	})
	require.NoError(t, err)

	menu, err := svc.Menu(context.Background(), 4, MenuFilter{Category: "Snacks"})
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Snacks", "Mains"}, menu.Categories)
	assert.Equal(t, []int64{1}, ids(menu.Items))
	assert.Equal(t, int64(4), menu.RestaurantID)
}

func TestMenuFailsWhenEitherFetchFails(t *testing.T) {
	boom := pkgerrors.New(pkgerrors.CodeDependency, "storefront unreachable")

	for name, backend := range map[string]*stubBackend{
		"categories": {categoriesErr: boom, items: menuFixture()},
		"items":      {itemsErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			svc, err := NewService(backend)
			require.NoError(t, err)
			_, err = svc.Menu(context.Background(), 1, MenuFilter{})
			assert.True(t, errors.Is(err, boom))
		})
	}
}

func TestMenuRejectsInvalidRestaurant(t *testing.T) {
	svc, err := NewService(&stubBackend{})
	require.NoError(t, err)
	_, err = svc.Menu(context.Background(), 0, MenuFilter{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRestaurantsNeverNil(t *testing.T) {
	svc, err := NewService(&stubBackend{})
	require.NoError(t, err)
	got, err := svc.Restaurants(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
