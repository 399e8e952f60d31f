package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhabites/kuha-web/internal/cart"
	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
)

type stubSubmitter struct {
	calls []kuha.OrderRequest
	err   error
}

func (s *stubSubmitter) SubmitOrder(ctx context.Context, order kuha.OrderRequest) error {
	s.calls = append(s.calls, order)
	return s.err
}

func filledCart() *cart.Provider {
	p := cart.NewProvider()
	p.AddItem(cart.Candidate{ID: 1, Name: "Chips", Price: decimal.NewFromInt(100), ImageURL: "chips.png"})
	p.AddItem(cart.Candidate{ID: 1, Name: "Chips", Price: decimal.NewFromInt(100), ImageURL: "chips.png"})
	p.AddItem(cart.Candidate{ID: 2, Name: "Soda", Price: decimal.NewFromInt(60)})
	return p
}

func validDetails() CustomerDetails {
	return CustomerDetails{Name: " Amina ", Phone: "0712345678", Address: "Westlands", Notes: "Gate B"}
}

func TestSubmitClearsCartOnSuccess(t *testing.T) {
	c := filledCart()
	backend := &stubSubmitter{}
	svc, err := NewService(c, backend)
	require.NoError(t, err)

	conf, err := svc.Submit(context.Background(), validDetails())
	require.NoError(t, err)

	assert.Equal(t, "Amina", conf.CustomerName)
	assert.Equal(t, 2, conf.ItemCount)
	assert.True(t, conf.Total.Equal(decimal.NewFromInt(260)))
	assert.Empty(t, c.Items())

	require.Len(t, backend.calls, 1)
	order := backend.calls[0]
	assert.Equal(t, "Amina", order.Name)
	assert.Equal(t, "Gate B", order.Notes)
	require.Len(t, order.Items, 2)
	assert.Equal(t, kuha.OrderItem{Name: "Chips", Price: decimal.NewFromInt(100), Quantity: 2, ImageURL: "chips.png"}, order.Items[0])
}

func TestSubmitKeepsCartOnBackendFailure(t *testing.T) {
	c := filledCart()
	backend := &stubSubmitter{err: pkgerrors.New(pkgerrors.CodeDependency, "storefront unreachable")}
	svc, err := NewService(c, backend)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validDetails())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.Len(t, c.Items(), 2)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		details CustomerDetails
		field   string
	}{
		{name: "missing name", details: CustomerDetails{Phone: "1", Address: "a"}, field: "name"},
		{name: "blank phone", details: CustomerDetails{Name: "n", Phone: "   ", Address: "a"}, field: "phone"},
		{name: "missing address", details: CustomerDetails{Name: "n", Phone: "1"}, field: "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &stubSubmitter{}
			svc, err := NewService(filledCart(), backend)
			require.NoError(t, err)

			_, err = svc.Submit(context.Background(), tt.details)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.Contains(t, typed.Details(), tt.field)
			assert.Empty(t, backend.calls)
		})
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	backend := &stubSubmitter{}
	svc, err := NewService(cart.NewProvider(), backend)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validDetails())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, backend.calls)
}
