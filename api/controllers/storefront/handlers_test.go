package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kuhabites/kuha-web/internal/catalog"
	"github.com/kuhabites/kuha-web/internal/checkout"
	"github.com/kuhabites/kuha-web/internal/inbox"
	"github.com/kuhabites/kuha-web/internal/menu"
	"github.com/kuhabites/kuha-web/internal/orders"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
)

func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type stubCatalog struct {
	restaurantID int64
	filter       catalog.MenuFilter
}

func (s *stubCatalog) Restaurants(ctx context.Context) ([]kuha.Restaurant, error) {
	return []kuha.Restaurant{{ID: 1, Name: "Kuha Grill"}}, nil
}

func (s *stubCatalog) Menu(ctx context.Context, restaurantID int64, filter catalog.MenuFilter) (*catalog.Menu, error) {
	s.restaurantID, s.filter = restaurantID, filter
	return &catalog.Menu{RestaurantID: restaurantID, Categories: []string{catalog.AllCategories}}, nil
}

func TestRestaurantMenuPassesFilter(t *testing.T) {
	svc := &stubCatalog{}
	req := withParam(httptest.NewRequest(http.MethodGet, "/?q=%20chips%20&category=Snacks", nil), "restaurantId", "4")

	resp := httptest.NewRecorder()
	RestaurantMenu(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.restaurantID != 4 {
		t.Fatalf("expected restaurant 4 got %d", svc.restaurantID)
	}
	if svc.filter != (catalog.MenuFilter{Search: "chips", Category: "Snacks"}) {
		t.Fatalf("unexpected filter %+v", svc.filter)
	}
}

func TestRestaurantMenuRejectsBadID(t *testing.T) {
	req := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "restaurantId", "abc")
	resp := httptest.NewRecorder()
	RestaurantMenu(&stubCatalog{}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

type stubCheckout struct {
	details checkout.CustomerDetails
	err     error
}

func (s *stubCheckout) Submit(ctx context.Context, details checkout.CustomerDetails) (*checkout.Confirmation, error) {
	s.details = details
	if s.err != nil {
		return nil, s.err
	}
	return &checkout.Confirmation{CustomerName: details.Name, ItemCount: 2, Total: decimal.NewFromInt(260)}, nil
}

func TestCheckoutCreatesOrder(t *testing.T) {
	svc := &stubCheckout{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Amina","phone":"0700","address":"Kilimani","notes":"gate B"}`))

	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var envelope struct {
		Data checkout.Confirmation `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.CustomerName != "Amina" || !envelope.Data.Total.Equal(decimal.NewFromInt(260)) {
		t.Fatalf("unexpected confirmation %+v", envelope.Data)
	}
	if svc.details.Notes != "gate B" {
		t.Fatalf("notes not forwarded: %+v", svc.details)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &stubCheckout{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Amina","phone":"0700","address":"Kilimani"}`))
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

type stubOrders struct {
	completed int64
	deleted   int64
}

func (s *stubOrders) List(ctx context.Context) (*orders.Board, error) {
	return &orders.Board{Summary: orders.Summary{Total: 2, Pending: 1, Completed: 1}}, nil
}

func (s *stubOrders) MarkCompleted(ctx context.Context, id int64) error {
	s.completed = id
	return nil
}

func (s *stubOrders) Delete(ctx context.Context, id int64) error {
	s.deleted = id
	return nil
}

func TestAdminOrderMutations(t *testing.T) {
	svc := &stubOrders{}

	resp := httptest.NewRecorder()
	AdminCompleteOrder(svc, nil).ServeHTTP(resp, withParam(httptest.NewRequest(http.MethodPatch, "/", nil), "orderId", "9"))
	if resp.Code != http.StatusNoContent || svc.completed != 9 {
		t.Fatalf("complete: status %d id %d", resp.Code, svc.completed)
	}

	resp = httptest.NewRecorder()
	AdminDeleteOrder(svc, nil).ServeHTTP(resp, withParam(httptest.NewRequest(http.MethodDelete, "/", nil), "orderId", "3"))
	if resp.Code != http.StatusNoContent || svc.deleted != 3 {
		t.Fatalf("delete: status %d id %d", resp.Code, svc.deleted)
	}

	resp = httptest.NewRecorder()
	AdminOrders(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(resp.Body.String(), `"pending":1`) {
		t.Fatalf("unexpected board %s", resp.Body.String())
	}
}

type stubMenu struct {
	restaurantID int64
	search       string
	form         menu.ItemForm
	created      bool
}

func (s *stubMenu) Items(ctx context.Context, restaurantID int64, search string) ([]kuha.MenuItem, error) {
	s.restaurantID, s.search = restaurantID, search
	return nil, nil
}

func (s *stubMenu) Create(ctx context.Context, form menu.ItemForm) error {
	s.form, s.created = form, true
	return nil
}

func (s *stubMenu) Update(ctx context.Context, id int64, form menu.ItemForm) error {
	s.form = form
	return nil
}

func (s *stubMenu) Delete(ctx context.Context, id int64) error { return nil }

func menuForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestAdminCreateMenuItem(t *testing.T) {
	body, contentType := menuForm(t, map[string]string{"name": "Pilau", "price": "350.50", "category": "2"})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)

	svc := &stubMenu{}
	resp := httptest.NewRecorder()
	AdminCreateMenuItem(svc, 1<<20, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if !svc.created || svc.form.Name != "Pilau" || svc.form.CategoryID != 2 || !svc.form.Price.Equal(decimal.RequireFromString("350.5")) {
		t.Fatalf("unexpected form %+v", svc.form)
	}
	if svc.form.Image != nil {
		t.Fatalf("expected no image")
	}
}

func TestAdminCreateMenuItemBadPrice(t *testing.T) {
	body, contentType := menuForm(t, map[string]string{"name": "Pilau", "price": "cheap", "category": "x"})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)

	svc := &stubMenu{}
	resp := httptest.NewRecorder()
	AdminCreateMenuItem(svc, 1<<20, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.created {
		t.Fatal("service should not be called")
	}
	for _, field := range []string{"price", "category"} {
		if !strings.Contains(resp.Body.String(), `"`+field+`"`) {
			t.Fatalf("expected %s detail in %s", field, resp.Body.String())
		}
	}
}

func TestAdminMenuItemsRequiresRestaurant(t *testing.T) {
	svc := &stubMenu{}

	resp := httptest.NewRecorder()
	AdminMenuItems(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	AdminMenuItems(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/?restaurant_id=5&q=pil", nil))
	if resp.Code != http.StatusOK || svc.restaurantID != 5 || svc.search != "pil" {
		t.Fatalf("unexpected call status=%d id=%d search=%q", resp.Code, svc.restaurantID, svc.search)
	}
}

type stubInbox struct {
	sent inbox.ContactMessage
}

func (s *stubInbox) Send(ctx context.Context, msg inbox.ContactMessage) error {
	s.sent = msg
	return nil
}

func (s *stubInbox) List(ctx context.Context) ([]kuha.Message, error) {
	return []kuha.Message{{ID: 1, Name: "Amina"}}, nil
}

func (s *stubInbox) Delete(ctx context.Context, id int64) error { return nil }

func TestSendMessage(t *testing.T) {
	svc := &stubInbox{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Amina","tell":"0700","message":"Hi"}`))
	resp := httptest.NewRecorder()
	SendMessage(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.sent.Tell != "0700" {
		t.Fatalf("unexpected message %+v", svc.sent)
	}
}

type stubWhatsApp struct{}

func (stubWhatsApp) WhatsAppLink(message string) string {
	return "https://wa.me/254?text=" + message
}

func TestWhatsAppLink(t *testing.T) {
	resp := httptest.NewRecorder()
	WhatsAppLink(stubWhatsApp{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/?message=hello", nil))
	if !strings.Contains(resp.Body.String(), `"url":"https://wa.me/254?text=hello"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
