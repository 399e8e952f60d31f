// Package kuha is the client for the Kuha Bites storefront REST backend.
package kuha

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kuhabites/kuha-web/pkg/upstream"
)

const BackendName = "storefront"

// Client wraps the storefront endpoints consumed by the BFF.
type Client struct {
	api *upstream.Client
}

// NewClient builds the storefront client.
func NewClient(baseURL string, opts ...upstream.Option) (*Client, error) {
	api, err := upstream.New(BackendName, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// MenuItemForm is the admin create/update payload. Image is optional.
type MenuItemForm struct {
	Name       string
	Price      decimal.Decimal
	CategoryID int64
	Image      *upstream.File
}

func (f MenuItemForm) multipart() *upstream.Form {
	form := (&upstream.Form{}).
		Set("name", f.Name).
		Set("price", f.Price.String()).
		Set("category", strconv.FormatInt(f.CategoryID, 10))
	if f.Image != nil {
		image := *f.Image
		image.Field = "image"
		form.Attach(image)
	}
	return form
}

func (c *Client) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	var out []Restaurant
	err := c.api.Do(ctx, upstream.Request{
		Operation: "list_restaurants",
		Method:    http.MethodGet,
		Path:      "/api/restaurants/",
	}, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context, restaurantID int64) ([]Category, error) {
	var out []Category
	err := c.api.Do(ctx, upstream.Request{
		Operation: "list_categories",
		Method:    http.MethodGet,
		Path:      "/api/categories/",
		Query:     url.Values{"restaurant_id": []string{strconv.FormatInt(restaurantID, 10)}},
	}, &out)
	return out, err
}

func (c *Client) ListMenuItems(ctx context.Context, restaurantID int64) ([]MenuItem, error) {
	var out []MenuItem
	err := c.api.Do(ctx, upstream.Request{
		Operation: "list_menu_items",
		Method:    http.MethodGet,
		Path:      fmt.Sprintf("/api/menu/restaurant/%d/", restaurantID),
	}, &out)
	return out, err
}

func (c *Client) SubmitOrder(ctx context.Context, order OrderRequest) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "submit_order",
		Method:    http.MethodPost,
		Path:      "/api/orders/",
		Body:      order,
	}, nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := c.api.Do(ctx, upstream.Request{
		Operation: "list_orders",
		Method:    http.MethodGet,
		Path:      "/api/orders/all/",
	}, &out)
	return out, err
}

func (c *Client) CompleteOrder(ctx context.Context, id int64) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "complete_order",
		Method:    http.MethodPatch,
		Path:      fmt.Sprintf("/api/orders/%d/complete/", id),
	}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "delete_order",
		Method:    http.MethodDelete,
		Path:      fmt.Sprintf("/api/orders/%d/delete/", id),
	}, nil)
}

func (c *Client) CreateMenuItem(ctx context.Context, form MenuItemForm) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "create_menu_item",
		Method:    http.MethodPost,
		Path:      "/api/menu/create/",
		Multipart: form.multipart(),
	}, nil)
}

func (c *Client) UpdateMenuItem(ctx context.Context, id int64, form MenuItemForm) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "update_menu_item",
		Method:    http.MethodPut,
		Path:      fmt.Sprintf("/api/menu/%d/update/", id),
		Multipart: form.multipart(),
	}, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "delete_menu_item",
		Method:    http.MethodDelete,
		Path:      fmt.Sprintf("/api/menu/%d/delete/", id),
	}, nil)
}

func (c *Client) SendMessage(ctx context.Context, msg MessageRequest) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "send_message",
		Method:    http.MethodPost,
		Path:      "/api/messages/",
		Body:      msg,
	}, nil)
}

func (c *Client) ListMessages(ctx context.Context) ([]Message, error) {
	var out []Message
	err := c.api.Do(ctx, upstream.Request{
		Operation: "list_messages",
		Method:    http.MethodGet,
		Path:      "/api/messages/",
	}, &out)
	return out, err
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.api.Do(ctx, upstream.Request{
		Operation: "delete_message",
		Method:    http.MethodDelete,
		Path:      fmt.Sprintf("/api/messages/%d/", id),
	}, nil)
}

// AdminLogin exchanges credentials for the backend's admin flag.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResponse, error) {
	var out AdminLoginResponse
	err := c.api.Do(ctx, upstream.Request{
		Operation: "admin_login",
		Method:    http.MethodPost,
		Path:      "/api/admin-login/",
		Body:      AdminLoginRequest{Username: username, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
